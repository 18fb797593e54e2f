package dto

import (
	"mime/multipart"
	"strings"

	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
	"github.com/yukikurage/alumni-portal-api/internal/validation"
)

// MemberForm is the registration and update body for member profiles.
// MemberID lets an admin update someone else's profile.
type MemberForm struct {
	MemberID     validation.Numeric    `form:"memberId" json:"memberId" binding:"omitempty,number"`
	FirstName    string                `form:"firstName" json:"firstName" binding:"required,max=100"`
	LastName     string                `form:"lastName" json:"lastName" binding:"required,max=100"`
	Email        string                `form:"email" json:"email" binding:"omitempty,email"`
	Phone        string                `form:"phone" json:"phone" binding:"max=50"`
	Promotion    validation.Numeric    `form:"promotion" json:"promotion" binding:"required,number"`
	Company      string                `form:"company" json:"company" binding:"max=255"`
	Position     string                `form:"position" json:"position" binding:"max=255"`
	Location     string                `form:"location" json:"location" binding:"max=255"`
	Bio          string                `form:"bio" json:"bio"`
	LinkedIn     string                `form:"linkedin" json:"linkedin" binding:"omitempty,url"`
	Expertise    []string              `form:"expertise" json:"expertise"`
	ProfileImage *multipart.FileHeader `form:"profileImage" json:"-"`
	DeleteImage  bool                  `form:"deleteImage" json:"deleteImage"`
}

// ExpertiseList drops blank entries.
func (f *MemberForm) ExpertiseList() []string {
	expertise := make([]string, 0, len(f.Expertise))
	for _, e := range f.Expertise {
		if e = strings.TrimSpace(e); e != "" {
			expertise = append(expertise, e)
		}
	}
	return expertise
}

// TargetMemberID returns the member an admin asked to update, if any.
func (f *MemberForm) TargetMemberID() *uint64 {
	if !f.MemberID.IsSet() {
		return nil
	}
	id := uint64(f.MemberID.Int())
	return &id
}

// MemberDirectoryResponse is one page of the members directory.
type MemberDirectoryResponse struct {
	Members    []models.Member          `json:"members"`
	Pagination utils.PaginationResponse `json:"pagination"`
}
