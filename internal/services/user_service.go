package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/alumni-portal-api/internal/media"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/repository"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
	"gorm.io/gorm"
)

// UserService handles the admin user management area.
type UserService struct {
	userRepo repository.UserRepository
	auth     *AuthService
	media    *media.Manager
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, auth *AuthService, media *media.Manager) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		media:    media,
	}
}

// List returns one page of users, newest first.
func (s *UserService) List(ctx context.Context, page utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Create registers a user with the given role.
func (s *UserService) Create(ctx context.Context, input RegisterInput) (*models.User, error) {
	return s.auth.Register(ctx, input)
}

// UpdateRole changes the role of a user.
func (s *UserService) UpdateRole(ctx context.Context, id uint64, role models.UserRole) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return s.auth.GetUser(ctx, id)
}

// Delete removes a user, their member profile and its image. Admins cannot
// delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id uint64) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}

	user, err := s.auth.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if user.Member != nil && user.Member.ProfileImage != nil {
		s.media.Cleanup(ctx, *user.Member.ProfileImage)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
