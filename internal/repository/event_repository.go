package repository

import (
	"context"
	"time"

	"github.com/yukikurage/alumni-portal-api/internal/database"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uint64) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List retrieves events newest first
func (r *GormEventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})

	if filter.Upcoming != nil {
		query = query.Where("upcoming = ?", *filter.Upcoming)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	events := []models.Event{}
	if err := query.Scopes(database.NewestFirst).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Update saves every column of an event
func (r *GormEventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes an event
func (r *GormEventRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &models.Event{}, id)
}

// SetUpcoming flips the upcoming flag without reading the row first
func (r *GormEventRepository) SetUpcoming(ctx context.Context, id uint64, upcoming bool) (time.Time, error) {
	return setFlag(ctx, r.db, &models.Event{}, id, "upcoming", upcoming, nil)
}
