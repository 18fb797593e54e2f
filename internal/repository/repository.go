package repository

import (
	"context"
	"time"

	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID, with the member profile loaded
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves users newest first
	List(ctx context.Context, page utils.PaginationParams) ([]models.User, int64, error)

	// UpdateRole changes the role of a user
	UpdateRole(ctx context.Context, id uint64, role models.UserRole) error

	// Delete removes a user and their member profile
	Delete(ctx context.Context, id uint64) error
}

// MemberRepository defines the interface for member profile data access
type MemberRepository interface {
	// Create creates a new member profile
	Create(ctx context.Context, member *models.Member) error

	// FindByID finds a member by ID
	FindByID(ctx context.Context, id uint64) (*models.Member, error)

	// FindByUserID finds the member profile owned by a user
	FindByUserID(ctx context.Context, userID uint64) (*models.Member, error)

	// List retrieves the directory page matching filter
	List(ctx context.Context, filter MemberFilter) ([]models.Member, int64, error)

	// Update saves every column of a member
	Update(ctx context.Context, member *models.Member) error

	// Delete removes a member profile
	Delete(ctx context.Context, id uint64) error
}

// MemberFilter holds the directory filters. Empty fields do not filter.
type MemberFilter struct {
	Name      string
	Company   string
	Position  string
	Location  string
	Promotion *int
	Page      utils.PaginationParams
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint64) (*models.Event, error)
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint64) error

	// SetUpcoming flips the upcoming flag without reading the row first
	SetUpcoming(ctx context.Context, id uint64, upcoming bool) (time.Time, error)
}

// EventFilter holds filtering options for listing events
type EventFilter struct {
	Upcoming *bool
	Category string
}

// NewsRepository defines the interface for news article data access
type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	FindByID(ctx context.Context, id uint64) (*models.News, error)
	List(ctx context.Context, filter NewsFilter) ([]models.News, error)
	Update(ctx context.Context, news *models.News) error
	Delete(ctx context.Context, id uint64) error

	// SetPublished flips the published flag without reading the row first.
	// No other column changes.
	SetPublished(ctx context.Context, id uint64, published bool) (time.Time, error)
}

// NewsFilter holds filtering options for listing news
type NewsFilter struct {
	Published *bool
	Category  string
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id uint64) (*models.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint64) error

	// SetFinished flips the finished flag without reading the row first
	SetFinished(ctx context.Context, id uint64, finished bool) (time.Time, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Finished *bool
	Category string
}
