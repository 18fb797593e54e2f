package models

import (
	"time"

	"gorm.io/datatypes"
)

// Event is either upcoming (active) or archived. Report is only kept for
// archived events.
type Event struct {
	ID          uint64                      `gorm:"primarykey" json:"id"`
	Title       string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Date        string                      `gorm:"type:varchar(10);not null;index" json:"date"`
	Time        string                      `gorm:"type:varchar(5);not null" json:"time"`
	Location    string                      `gorm:"type:varchar(255);not null" json:"location"`
	Category    string                      `gorm:"type:varchar(100);not null" json:"category"`
	Attendees   int                         `gorm:"not null;default:0" json:"attendees"`
	Upcoming    bool                        `gorm:"not null;default:true;index" json:"upcoming"`
	Image       *string                     `gorm:"type:varchar(1024)" json:"image"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Report      *string                     `gorm:"type:text" json:"report"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// StoredImages returns every stored object URL referenced by the event.
func (e *Event) StoredImages() []string {
	urls := make([]string, 0, len(e.Images)+1)
	if e.Image != nil {
		urls = append(urls, *e.Image)
	}
	return append(urls, e.Images...)
}
