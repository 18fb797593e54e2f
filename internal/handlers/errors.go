package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/alumni-portal-api/internal/constants"
	apierrors "github.com/yukikurage/alumni-portal-api/internal/errors"
	"github.com/yukikurage/alumni-portal-api/internal/media"
	"github.com/yukikurage/alumni-portal-api/internal/services"
	"github.com/yukikurage/alumni-portal-api/internal/validation"
)

// respondServiceError maps service errors onto API errors. Unexpected errors
// are logged and answered with a generic message.
func respondServiceError(c *gin.Context, logger *log.Logger, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		apierrors.ValidationFailed(c, verrs)
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, capitalize(err.Error()))
	case errors.Is(err, media.ErrFileTooLarge):
		apierrors.BadRequest(c, "Image exceeds the upload size limit")
	case errors.Is(err, media.ErrUpload):
		logger.Error("image upload failed", "path", c.FullPath(), "err", err)
		apierrors.UploadFailed(c)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrNotMemberOwner):
		apierrors.InsufficientRole(c)
	case errors.Is(err, services.ErrMemberExists),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrCannotDeleteSelf):
		apierrors.BadRequest(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	default:
		logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
		apierrors.InternalError(c, "")
	}
}

// bind decodes and validates the request body, answering 400 on failure.
func bind(c *gin.Context, obj interface{}) bool {
	if err := validation.Bind(c, obj); err != nil {
		apierrors.ValidationFailed(c, validation.Translate(err))
		return false
	}
	return true
}

// bindJSON is bind for JSON-only endpoints.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := validation.BindJSON(c, obj); err != nil {
		apierrors.ValidationFailed(c, validation.Translate(err))
		return false
	}
	return true
}

// parseID reads the :id path parameter, answering 400 when malformed.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

// queryBool reads an optional boolean query parameter.
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		apierrors.ValidationFailed(c, validation.Errors{{Field: name, Message: "must be true or false"}})
		return nil, false
	}
	return &value, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSpace(string(r))
}
