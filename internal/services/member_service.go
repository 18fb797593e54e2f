package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yukikurage/alumni-portal-api/internal/constants"
	"github.com/yukikurage/alumni-portal-api/internal/dto"
	"github.com/yukikurage/alumni-portal-api/internal/media"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/repository"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
	"gorm.io/gorm"
)

// MemberService handles member profile business logic
type MemberService struct {
	memberRepo repository.MemberRepository
	userRepo   repository.UserRepository
	media      *media.Manager
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo repository.MemberRepository, userRepo repository.UserRepository, media *media.Manager) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		userRepo:   userRepo,
		media:      media,
	}
}

// Directory returns one page of members matching filter
func (s *MemberService) Directory(ctx context.Context, filter repository.MemberFilter) ([]models.Member, int64, error) {
	members, total, err := s.memberRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	return members, total, nil
}

// Get returns a member by ID
func (s *MemberService) Get(ctx context.Context, id uint64) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return member, nil
}

// GetOwn returns the profile of the session user
func (s *MemberService) GetOwn(ctx context.Context, actor *utils.SessionClaims) (*models.Member, error) {
	userID, err := s.resolveUserID(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.findByUser(ctx, userID)
}

// Register creates the profile of the session user. A user has at most one
// profile; the image is uploaded before the row is inserted.
func (s *MemberService) Register(ctx context.Context, actor *utils.SessionClaims, form dto.MemberForm) (*models.Member, error) {
	userID, err := s.resolveUserID(ctx, actor)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.FindByUserID(ctx, userID); err == nil {
		return nil, ErrMemberExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check member: %w", err)
	}

	plan := &media.Plan{}
	image, err := s.media.Reconcile(ctx, plan, constants.MediaKindMember, strconv.FormatUint(userID, 10), media.Slot{File: form.ProfileImage})
	if err != nil {
		return nil, err
	}

	member := &models.Member{UserID: userID}
	applyMemberForm(member, form)
	if member.Email == "" {
		member.Email = actor.Email
	}
	member.ProfileImage = image

	if err := s.memberRepo.Create(ctx, member); err != nil {
		s.media.Rollback(ctx, plan)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMemberExists
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// Update changes the profile of the session user, or of form.MemberID when
// the actor is an admin.
func (s *MemberService) Update(ctx context.Context, actor *utils.SessionClaims, form dto.MemberForm) (*models.Member, error) {
	member, err := s.resolveTarget(ctx, actor, form.TargetMemberID())
	if err != nil {
		return nil, err
	}

	plan := &media.Plan{}
	image, err := s.media.Reconcile(ctx, plan, constants.MediaKindMember, strconv.FormatUint(member.UserID, 10), media.Slot{
		Current: member.ProfileImage,
		Delete:  form.DeleteImage,
		File:    form.ProfileImage,
	})
	if err != nil {
		return nil, err
	}

	updated := *member
	applyMemberForm(&updated, form)
	if updated.Email == "" {
		updated.Email = member.Email
	}
	updated.ProfileImage = image

	if err := s.memberRepo.Update(ctx, &updated); err != nil {
		s.media.Rollback(ctx, plan)
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	s.media.Commit(ctx, plan)

	return &updated, nil
}

// Delete removes a member's profile image and then the profile
func (s *MemberService) Delete(ctx context.Context, id uint64) error {
	member, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if member.ProfileImage != nil {
		s.media.Cleanup(ctx, *member.ProfileImage)
	}

	if err := s.memberRepo.Delete(ctx, member.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// resolveUserID returns the acting user's id, looking it up by email when
// the session carries none.
func (s *MemberService) resolveUserID(ctx context.Context, actor *utils.SessionClaims) (uint64, error) {
	if actor.UserID != 0 {
		return actor.UserID, nil
	}

	email := strings.TrimSpace(actor.Email)
	if email == "" {
		return 0, ErrUserNotFound
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to find user: %w", err)
	}
	return user.ID, nil
}

func (s *MemberService) resolveTarget(ctx context.Context, actor *utils.SessionClaims, memberID *uint64) (*models.Member, error) {
	if memberID == nil {
		userID, err := s.resolveUserID(ctx, actor)
		if err != nil {
			return nil, err
		}
		return s.findByUser(ctx, userID)
	}

	if actor.Role != constants.RoleAdmin {
		own, err := s.GetOwn(ctx, actor)
		if err != nil || own.ID != *memberID {
			return nil, ErrNotMemberOwner
		}
		return own, nil
	}

	return s.Get(ctx, *memberID)
}

func (s *MemberService) findByUser(ctx context.Context, userID uint64) (*models.Member, error) {
	member, err := s.memberRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return member, nil
}

func applyMemberForm(member *models.Member, form dto.MemberForm) {
	member.FirstName = strings.TrimSpace(form.FirstName)
	member.LastName = strings.TrimSpace(form.LastName)
	member.Email = strings.TrimSpace(form.Email)
	member.Phone = strings.TrimSpace(form.Phone)
	member.Promotion = form.Promotion.Int()
	member.Company = strings.TrimSpace(form.Company)
	member.Position = strings.TrimSpace(form.Position)
	member.Location = strings.TrimSpace(form.Location)
	member.Bio = form.Bio
	member.LinkedIn = strings.TrimSpace(form.LinkedIn)
	member.Expertise = form.ExpertiseList()
}
