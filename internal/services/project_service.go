package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yukikurage/alumni-portal-api/internal/constants"
	"github.com/yukikurage/alumni-portal-api/internal/dto"
	"github.com/yukikurage/alumni-portal-api/internal/media"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectService handles project business logic
type ProjectService struct {
	repo  repository.ProjectRepository
	media *media.Manager
}

// NewProjectService creates a new ProjectService
func NewProjectService(repo repository.ProjectRepository, media *media.Manager) *ProjectService {
	return &ProjectService{
		repo:  repo,
		media: media,
	}
}

// List returns projects newest first
func (s *ProjectService) List(ctx context.Context, filter repository.ProjectFilter) ([]models.Project, error) {
	projects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project by ID
func (s *ProjectService) Get(ctx context.Context, id uint64) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// Create uploads the cover image and inserts the project
func (s *ProjectService) Create(ctx context.Context, form dto.ProjectForm) (*models.Project, error) {
	plan := &media.Plan{}

	image, err := s.media.Reconcile(ctx, plan, constants.MediaKindProject, media.NewRef(), media.Slot{File: form.Image})
	if err != nil {
		return nil, err
	}

	project := &models.Project{}
	applyProjectForm(project, form)
	project.Image = image

	if err := s.repo.Create(ctx, project); err != nil {
		s.media.Rollback(ctx, plan)
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// Update applies form to project, reconciling the cover image
func (s *ProjectService) Update(ctx context.Context, project *models.Project, form dto.ProjectForm) (*models.Project, error) {
	plan := &media.Plan{}

	image, err := s.media.Reconcile(ctx, plan, constants.MediaKindProject, strconv.FormatUint(project.ID, 10), media.Slot{
		Current: project.Image,
		Delete:  form.DeleteImage,
		File:    form.Image,
	})
	if err != nil {
		return nil, err
	}

	updated := *project
	applyProjectForm(&updated, form)
	updated.Image = image

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.media.Rollback(ctx, plan)
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	s.media.Commit(ctx, plan)

	return &updated, nil
}

// Delete removes the cover image and then the project
func (s *ProjectService) Delete(ctx context.Context, project *models.Project) error {
	if project.Image != nil {
		s.media.Cleanup(ctx, *project.Image)
	}

	if err := s.repo.Delete(ctx, project.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// SetFinished moves a project between the current and finished lists
func (s *ProjectService) SetFinished(ctx context.Context, id uint64, finished bool) (time.Time, error) {
	updatedAt, err := s.repo.SetFinished(ctx, id, finished)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrProjectNotFound
		}
		return time.Time{}, fmt.Errorf("failed to update project: %w", err)
	}
	return updatedAt, nil
}

func applyProjectForm(project *models.Project, form dto.ProjectForm) {
	project.Title = strings.TrimSpace(form.Title)
	project.Description = form.Description
	project.Category = strings.TrimSpace(form.Category)
	project.Goal = form.Goal.Float()
	project.Raised = form.Raised.Float()
	project.Contributors = form.Contributors.Int()
	project.Needs = form.NeedsList()
	project.IsFinished = form.IsFinished

	// Testimonial and total raised belong to finished projects only.
	project.Testimonial = datatypes.NewJSONType(models.Testimonial{})
	project.TotalRaised = nil
	if project.IsFinished {
		project.Testimonial = datatypes.NewJSONType(form.TestimonialValue())
		project.TotalRaised = form.TotalRaisedValue()
	}
}
