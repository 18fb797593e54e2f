package dto

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/validation"
)

// ProjectForm is the create and update body for projects.
type ProjectForm struct {
	Title              string                `form:"title" json:"title" binding:"required,max=255"`
	Description        string                `form:"description" json:"description" binding:"required"`
	Category           string                `form:"category" json:"category" binding:"required,max=100"`
	Goal               validation.Numeric    `form:"goal" json:"goal" binding:"required,numeric"`
	Raised             validation.Numeric    `form:"raised" json:"raised" binding:"omitempty,numeric"`
	Contributors       validation.Numeric    `form:"contributors" json:"contributors" binding:"omitempty,number"`
	Needs              []string              `form:"needs" json:"needs"`
	IsFinished         bool                  `form:"isFinished" json:"isFinished"`
	TestimonialAuthor  string                `form:"testimonialAuthor" json:"testimonialAuthor"`
	TestimonialRole    string                `form:"testimonialRole" json:"testimonialRole"`
	TestimonialContent string                `form:"testimonialContent" json:"testimonialContent"`
	TotalRaised        validation.Numeric    `form:"totalRaised" json:"totalRaised" binding:"omitempty,numeric"`
	Image              *multipart.FileHeader `form:"image" json:"-"`
	DeleteImage        bool                  `form:"deleteImage" json:"deleteImage"`
}

// NeedsList drops blank entries.
func (f *ProjectForm) NeedsList() []string {
	needs := make([]string, 0, len(f.Needs))
	for _, need := range f.Needs {
		if need = strings.TrimSpace(need); need != "" {
			needs = append(needs, need)
		}
	}
	return needs
}

// TestimonialValue returns the submitted testimonial.
func (f *ProjectForm) TestimonialValue() models.Testimonial {
	return models.Testimonial{
		Author:  strings.TrimSpace(f.TestimonialAuthor),
		Role:    strings.TrimSpace(f.TestimonialRole),
		Content: strings.TrimSpace(f.TestimonialContent),
	}
}

// TotalRaisedValue returns the submitted total, or nil when absent.
func (f *ProjectForm) TotalRaisedValue() *float64 {
	if !f.TotalRaised.IsSet() {
		return nil
	}
	v := f.TotalRaised.Float()
	return &v
}

// FinishedToggle is the PATCH body for projects.
type FinishedToggle struct {
	IsFinished *bool `json:"isFinished" binding:"required"`
}

// ProjectDTO represents a project in API responses. Finished-only fields are
// null for current projects.
type ProjectDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	Goal         float64             `json:"goal"`
	Raised       float64             `json:"raised"`
	Contributors int                 `json:"contributors"`
	Image        *string             `json:"image"`
	Needs        []string            `json:"needs"`
	IsFinished   bool                `json:"isFinished"`
	Testimonial  *models.Testimonial `json:"testimonial"`
	TotalRaised  *float64            `json:"totalRaised"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:           project.ID,
		Title:        project.Title,
		Description:  project.Description,
		Category:     project.Category,
		Goal:         project.Goal,
		Raised:       project.Raised,
		Contributors: project.Contributors,
		Image:        project.Image,
		Needs:        nonNil(project.Needs),
		IsFinished:   project.IsFinished,
		CreatedAt:    project.CreatedAt,
		UpdatedAt:    project.UpdatedAt,
	}
	if project.IsFinished {
		if testimonial := project.Testimonial.Data(); !testimonial.IsZero() {
			dto.Testimonial = &testimonial
		}
		dto.TotalRaised = project.TotalRaised
	}
	return dto
}

// ToProjectDTOs converts a list of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
