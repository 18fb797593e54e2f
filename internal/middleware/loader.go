package middleware

import (
	"context"
	"errors"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/alumni-portal-api/internal/errors"
	"github.com/yukikurage/alumni-portal-api/internal/services"
)

// Finder loads a record by ID.
type Finder[T any] func(ctx context.Context, id uint64) (*T, error)

// LoadEntity loads the record named by the :id parameter and stores it in the
// context under key. A missing record ends the request with 404 before the
// handler runs, so no write happens for unknown IDs.
func LoadEntity[T any](key, notFoundMessage string, find Finder[T], logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid ID")
			return
		}

		entity, err := find(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				apierrors.NotFound(c, notFoundMessage)
				return
			}
			logger.Error("failed to load record", "key", key, "id", id, "err", err)
			apierrors.InternalError(c, "")
			return
		}

		c.Set(key, entity)
		c.Next()
	}
}

// GetEntity retrieves a record stored by LoadEntity
func GetEntity[T any](c *gin.Context, key string) (*T, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	entity, ok := value.(*T)
	return entity, ok
}
