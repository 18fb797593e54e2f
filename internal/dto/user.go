package dto

import (
	"time"

	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
)

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,max=255"`
}

// LoginRequest holds credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the admin variant of RegisterRequest.
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" binding:"omitempty,oneof=user admin"`
}

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Image     *string         `json:"image"`
	Role      models.UserRole `json:"role"`
	HasMember bool            `json:"hasMember"`
	CreatedAt time.Time       `json:"createdAt"`
}

// SessionDTO is the authenticated session returned by login and session.
type SessionDTO struct {
	User      SessionUserDTO `json:"user"`
	Token     string         `json:"token,omitempty"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
}

// SessionUserDTO mirrors the claims carried by the session token.
type SessionUserDTO struct {
	ID    uint64  `json:"id"`
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
	Role  string  `json:"role"`
}

// UserListResponse is one page of users.
type UserListResponse struct {
	Users      []UserDTO                `json:"users"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Image:     user.Image,
		Role:      user.Role,
		HasMember: user.Member != nil,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a list of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToSessionDTO converts session claims to SessionDTO
func ToSessionDTO(claims *utils.SessionClaims, token string) SessionDTO {
	dto := SessionDTO{
		User: SessionUserDTO{
			ID:    claims.UserID,
			Email: claims.Email,
			Name:  claims.Name,
			Image: claims.Image,
			Role:  claims.Role,
		},
		Token: token,
	}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		dto.ExpiresAt = &expiresAt
	}
	return dto
}
