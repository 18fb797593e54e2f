package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every "not found" error of this package.
var ErrNotFound = errors.New("not found")

var (
	ErrEventNotFound   = fmt.Errorf("event %w", ErrNotFound)
	ErrNewsNotFound    = fmt.Errorf("news article %w", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrMemberNotFound  = fmt.Errorf("member %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrMemberExists       = errors.New("member profile already exists for this user")
	ErrNotMemberOwner     = errors.New("only admins can update another member's profile")
	ErrCannotDeleteSelf   = errors.New("admins cannot delete their own account")
	ErrInvalidRole        = errors.New("invalid role")

	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAIEmptyResponse        = errors.New("AI did not return an excerpt")
)
