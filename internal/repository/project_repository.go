package repository

import (
	"context"
	"time"

	"github.com/yukikurage/alumni-portal-api/internal/database"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects newest first
func (r *GormProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{})

	if filter.Finished != nil {
		query = query.Where("is_finished = ?", *filter.Finished)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	projects := []models.Project{}
	if err := query.Scopes(database.NewestFirst).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update saves every column of a project
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &models.Project{}, id)
}

// SetFinished flips the finished flag without reading the row first
func (r *GormProjectRepository) SetFinished(ctx context.Context, id uint64, finished bool) (time.Time, error) {
	return setFlag(ctx, r.db, &models.Project{}, id, "is_finished", finished, nil)
}
