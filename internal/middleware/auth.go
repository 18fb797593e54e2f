package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/alumni-portal-api/internal/constants"
	apierrors "github.com/yukikurage/alumni-portal-api/internal/errors"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
)

// TokenParser validates session tokens.
type TokenParser interface {
	Parse(token string) (*utils.SessionClaims, error)
}

// Session reads the session token from the Authorization header or the
// session cookie and, when it is valid, stores its claims in the context.
// Requests without a valid token continue anonymously.
func Session(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if value, ok := sessions.Default(c).Get(constants.SessionTokenKey).(string); ok {
				token = value
			}
		}

		if token != "" {
			if claims, err := parser.Parse(token); err == nil {
				c.Set(constants.ContextKeyClaims, claims)
				c.Set(constants.ContextKeyUserID, claims.UserID)
			}
		}

		c.Next()
	}
}

// RequireAuth rejects requests without a valid session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetClaims(c); !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		c.Next()
	}
}

// RequireRole rejects requests whose session lacks role. Both a missing
// session and a wrong role answer 401.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		if claims.Role != role {
			apierrors.InsufficientRole(c)
			return
		}
		c.Next()
	}
}

// GetClaims retrieves the session claims from context
func GetClaims(c *gin.Context) (*utils.SessionClaims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.SessionClaims)
	return claims, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint64)
	return userID, ok
}

// IsAdmin reports whether the session belongs to an admin.
func IsAdmin(c *gin.Context) bool {
	claims, ok := GetClaims(c)
	return ok && claims.Role == constants.RoleAdmin
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
