package repository

import (
	"context"
	"time"

	"github.com/yukikurage/alumni-portal-api/internal/database"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"gorm.io/gorm"
)

// GormNewsRepository is a GORM implementation of NewsRepository
type GormNewsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &GormNewsRepository{db: db}
}

// Create creates a new article
func (r *GormNewsRepository) Create(ctx context.Context, news *models.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

// FindByID finds an article by ID
func (r *GormNewsRepository) FindByID(ctx context.Context, id uint64) (*models.News, error) {
	var news models.News
	if err := r.db.WithContext(ctx).First(&news, id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

// List retrieves articles newest first
func (r *GormNewsRepository) List(ctx context.Context, filter NewsFilter) ([]models.News, error) {
	query := r.db.WithContext(ctx).Model(&models.News{})

	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	articles := []models.News{}
	if err := query.Scopes(database.NewestFirst).Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// Update saves every column of an article
func (r *GormNewsRepository) Update(ctx context.Context, news *models.News) error {
	return r.db.WithContext(ctx).Save(news).Error
}

// Delete removes an article
func (r *GormNewsRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &models.News{}, id)
}

// SetPublished flips the published flag without reading the row first.
// Only published and updated_at change; PublishedAt is stamped by Update.
func (r *GormNewsRepository) SetPublished(ctx context.Context, id uint64, published bool) (time.Time, error) {
	return setFlag(ctx, r.db, &models.News{}, id, "published", published, nil)
}
