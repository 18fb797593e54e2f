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
	"gorm.io/gorm"
)

// EventService handles event business logic
type EventService struct {
	repo  repository.EventRepository
	media *media.Manager
}

// NewEventService creates a new EventService
func NewEventService(repo repository.EventRepository, media *media.Manager) *EventService {
	return &EventService{
		repo:  repo,
		media: media,
	}
}

// List returns events newest first
func (s *EventService) List(ctx context.Context, filter repository.EventFilter) ([]models.Event, error) {
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Get returns an event by ID
func (s *EventService) Get(ctx context.Context, id uint64) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

// Create uploads the event images and inserts the event. Nothing is
// persisted when the cover upload fails; gallery uploads may fail one by one.
func (s *EventService) Create(ctx context.Context, form dto.EventForm) (*models.Event, error) {
	plan := &media.Plan{}
	ref := media.NewRef()

	image, err := s.media.Reconcile(ctx, plan, constants.MediaKindEvent, ref, media.Slot{File: form.Image})
	if err != nil {
		return nil, err
	}
	gallery := s.media.ReconcileGallery(ctx, plan, constants.MediaKindEvent, ref, nil, nil, form.Images)

	event := &models.Event{}
	applyEventForm(event, form)
	event.Image = image
	event.Images = gallery

	if err := s.repo.Create(ctx, event); err != nil {
		s.media.Rollback(ctx, plan)
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// Update applies form to event, reconciling the cover and gallery images.
// Replaced objects are removed only after the row has been saved.
func (s *EventService) Update(ctx context.Context, event *models.Event, form dto.EventForm) (*models.Event, error) {
	plan := &media.Plan{}
	ref := strconv.FormatUint(event.ID, 10)

	image, err := s.media.Reconcile(ctx, plan, constants.MediaKindEvent, ref, media.Slot{
		Current: event.Image,
		Delete:  form.DeleteImage,
		File:    form.Image,
	})
	if err != nil {
		return nil, err
	}
	gallery := s.media.ReconcileGallery(ctx, plan, constants.MediaKindEvent, ref, event.Images, form.RemoveImages, form.Images)

	updated := *event
	applyEventForm(&updated, form)
	updated.Image = image
	updated.Images = gallery

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.media.Rollback(ctx, plan)
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	s.media.Commit(ctx, plan)

	return &updated, nil
}

// Delete removes the event images and then the event
func (s *EventService) Delete(ctx context.Context, event *models.Event) error {
	s.media.Cleanup(ctx, event.StoredImages()...)

	if err := s.repo.Delete(ctx, event.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// SetUpcoming moves an event between the upcoming and archived lists
func (s *EventService) SetUpcoming(ctx context.Context, id uint64, upcoming bool) (time.Time, error) {
	updatedAt, err := s.repo.SetUpcoming(ctx, id, upcoming)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrEventNotFound
		}
		return time.Time{}, fmt.Errorf("failed to update event: %w", err)
	}
	return updatedAt, nil
}

func applyEventForm(event *models.Event, form dto.EventForm) {
	event.Title = strings.TrimSpace(form.Title)
	event.Description = form.Description
	event.Date = form.Date
	event.Time = form.Time
	event.Location = strings.TrimSpace(form.Location)
	event.Category = strings.TrimSpace(form.Category)
	event.Attendees = form.Attendees.Int()
	event.Upcoming = form.IsUpcoming()

	// Reports belong to archived events only.
	event.Report = nil
	if !event.Upcoming {
		event.Report = form.ReportText()
	}
}
