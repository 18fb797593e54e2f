package repository

import (
	"context"
	"strings"

	"github.com/yukikurage/alumni-portal-api/internal/database"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member profile
func (r *GormMemberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// FindByID finds a member by ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByUserID finds the member profile owned by a user
func (r *GormMemberRepository) FindByUserID(ctx context.Context, userID uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List retrieves the directory page matching filter. Filters are combined
// with AND; text filters are case-insensitive substring matches.
func (r *GormMemberRepository) List(ctx context.Context, filter MemberFilter) ([]models.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Member{})

	if name := strings.TrimSpace(filter.Name); name != "" {
		pattern := likePattern(name)
		query = query.Where(
			"(LOWER(members.first_name) LIKE ? OR LOWER(members.last_name) LIKE ? OR LOWER("+concatName(r.db)+") LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	if company := strings.TrimSpace(filter.Company); company != "" {
		query = query.Where("LOWER(members.company) LIKE ?", likePattern(company))
	}
	if position := strings.TrimSpace(filter.Position); position != "" {
		query = query.Where("LOWER(members.position) LIKE ?", likePattern(position))
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		query = query.Where("LOWER(members.location) LIKE ?", likePattern(location))
	}
	if filter.Promotion != nil {
		query = query.Where("members.promotion = ?", *filter.Promotion)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	members := []models.Member{}
	if err := query.
		Order("members.last_name ASC").
		Order("members.first_name ASC").
		Order("members.id ASC").
		Scopes(database.Paginate(filter.Page)).
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// Update saves every column of a member
func (r *GormMemberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete removes a member profile
func (r *GormMemberRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, &models.Member{}, id)
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// concatName returns the dialect's expression for "first_name last_name".
func concatName(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "CONCAT(members.first_name, ' ', members.last_name)"
	default:
		return "members.first_name || ' ' || members.last_name"
	}
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uint64) error {
	result := db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
