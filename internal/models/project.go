package models

import (
	"time"

	"gorm.io/datatypes"
)

// Testimonial is the closing quote attached to a finished project.
type Testimonial struct {
	Author  string `json:"author"`
	Role    string `json:"role,omitempty"`
	Content string `json:"content"`
}

// IsZero reports whether nothing was filled in.
func (t Testimonial) IsZero() bool {
	return t.Author == "" && t.Role == "" && t.Content == ""
}

// Project is either current or finished. Testimonial and TotalRaised are only
// kept for finished projects, Needs only for current ones.
type Project struct {
	ID           uint64                          `gorm:"primarykey" json:"id"`
	Title        string                          `gorm:"type:varchar(255);not null" json:"title"`
	Description  string                          `gorm:"type:text;not null" json:"description"`
	Category     string                          `gorm:"type:varchar(100);not null" json:"category"`
	Goal         float64                         `gorm:"not null" json:"goal"`
	Raised       float64                         `gorm:"not null;default:0" json:"raised"`
	Contributors int                             `gorm:"not null;default:0" json:"contributors"`
	Image        *string                         `gorm:"type:varchar(1024)" json:"image"`
	Needs        datatypes.JSONSlice[string]     `json:"needs"`
	IsFinished   bool                            `gorm:"not null;default:false;index" json:"isFinished"`
	Testimonial  datatypes.JSONType[Testimonial] `json:"testimonial"`
	TotalRaised  *float64                        `json:"totalRaised"`
	CreatedAt    time.Time                       `json:"createdAt"`
	UpdatedAt    time.Time                       `json:"updatedAt"`
}
