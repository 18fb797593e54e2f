package dto

import (
	"mime/multipart"
	"strings"

	"github.com/yukikurage/alumni-portal-api/internal/validation"
)

// EventForm is the create and update body for events. It is sent as
// multipart/form-data when images are attached, JSON otherwise.
type EventForm struct {
	Title        string                  `form:"title" json:"title" binding:"required,max=255"`
	Description  string                  `form:"description" json:"description" binding:"required"`
	Date         string                  `form:"date" json:"date" binding:"required,datetime=2006-01-02"`
	Time         string                  `form:"time" json:"time" binding:"required,datetime=15:04"`
	Location     string                  `form:"location" json:"location" binding:"required,max=255"`
	Category     string                  `form:"category" json:"category" binding:"required,max=100"`
	Attendees    validation.Numeric      `form:"attendees" json:"attendees" binding:"omitempty,number"`
	Upcoming     *bool                   `form:"upcoming" json:"upcoming"`
	Report       string                  `form:"report" json:"report"`
	Image        *multipart.FileHeader   `form:"image" json:"-"`
	DeleteImage  bool                    `form:"deleteImage" json:"deleteImage"`
	Images       []*multipart.FileHeader `form:"images" json:"-" binding:"max=20"`
	RemoveImages []string                `form:"removeImages" json:"removeImages"`
}

// IsUpcoming defaults to true when the flag was not sent.
func (f *EventForm) IsUpcoming() bool {
	return f.Upcoming == nil || *f.Upcoming
}

// ReportText returns the trimmed report, or nil when empty.
func (f *EventForm) ReportText() *string {
	return optionalText(f.Report)
}

// UpcomingToggle is the PATCH body for events.
type UpcomingToggle struct {
	Upcoming *bool `json:"upcoming" binding:"required"`
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
