package models

import "time"

type News struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Category    string     `gorm:"type:varchar(100);not null" json:"category"`
	Author      string     `gorm:"type:varchar(255)" json:"author"`
	Image       *string    `gorm:"type:varchar(1024)" json:"image"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (News) TableName() string {
	return "news"
}
