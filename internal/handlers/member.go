package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/alumni-portal-api/internal/constants"
	"github.com/yukikurage/alumni-portal-api/internal/dto"
	apierrors "github.com/yukikurage/alumni-portal-api/internal/errors"
	"github.com/yukikurage/alumni-portal-api/internal/middleware"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/repository"
	"github.com/yukikurage/alumni-portal-api/internal/services"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
	"github.com/yukikurage/alumni-portal-api/internal/validation"
)

type MemberHandler struct {
	memberService *services.MemberService
	logger        *log.Logger
}

func NewMemberHandler(memberService *services.MemberService, logger *log.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		logger:        logger,
	}
}

// ListMembers returns one page of the members directory
// Filters: name, company, role (position), promotion, location
func (h *MemberHandler) ListMembers(c *gin.Context) {
	filter := repository.MemberFilter{
		Name:     c.Query("name"),
		Company:  c.Query("company"),
		Position: c.Query("role"),
		Location: c.Query("location"),
		Page:     utils.ParsePagination(c, constants.MemberPageSize, constants.MaxMemberPageSize),
	}

	if raw := strings.TrimSpace(c.Query("promotion")); raw != "" {
		promotion, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.ValidationFailed(c, validation.Errors{{Field: "promotion", Message: "must be a number"}})
			return
		}
		filter.Promotion = &promotion
	}

	members, total, err := h.memberService.Directory(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MemberDirectoryResponse{
		Members:    members,
		Pagination: utils.NewPaginationResponse(filter.Page, total),
	})
}

// GetMember returns a specific member
func (h *MemberHandler) GetMember(c *gin.Context) {
	member, ok := middleware.GetEntity[models.Member](c, constants.ContextKeyMember)
	if !ok {
		apierrors.InternalError(c, "Member not found in context")
		return
	}

	c.JSON(http.StatusOK, member)
}

// GetOwnProfile returns the session user's member profile
func (h *MemberHandler) GetOwnProfile(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	member, err := h.memberService.GetOwn(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// Register creates the session user's member profile
func (h *MemberHandler) Register(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var form dto.MemberForm
	if !bind(c, &form) {
		return
	}

	member, err := h.memberService.Register(c.Request.Context(), claims, form)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// Update changes the session user's profile, or any profile for admins
func (h *MemberHandler) Update(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var form dto.MemberForm
	if !bind(c, &form) {
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), claims, form)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteMember removes a member profile and its image
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	member, ok := middleware.GetEntity[models.Member](c, constants.ContextKeyMember)
	if !ok {
		apierrors.InternalError(c, "Member not found in context")
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), member.ID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member deleted successfully",
	})
}
