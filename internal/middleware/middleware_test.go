package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/alumni-portal-api/internal/constants"
	"github.com/yukikurage/alumni-portal-api/internal/logger"
	"github.com/yukikurage/alumni-portal-api/internal/services"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
)

func newSessionRouter(t *testing.T, tokens *utils.TokenIssuer, guard gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.Use(Session(tokens))
	r.GET("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.SessionTokenKey, c.Query("token"))
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})
	r.GET("/protected", guard, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "admin": IsAdmin(c)})
	})
	return r
}

func issue(t *testing.T, tokens *utils.TokenIssuer, id uint64, role string) string {
	t.Helper()

	token, err := tokens.Issue(utils.SessionClaims{UserID: id, Role: role, Email: "a@example.com"})
	require.NoError(t, err)
	return token
}

func TestSession_BearerToken(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	r := newSessionRouter(t, tokens, RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, 7, constants.RoleUser))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":7,"admin":false}`, w.Body.String())
}

func TestSession_CookieToken(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	r := newSessionRouter(t, tokens, RequireRole(constants.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/login?token="+issue(t, tokens, 3, constants.RoleAdmin), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":3,"admin":true}`, w.Body.String())
}

func TestSession_RejectsBadTokens(t *testing.T) {
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	other := utils.NewTokenIssuer("other-secret", time.Hour)
	expired := utils.NewTokenIssuer("secret", -time.Minute)

	tests := []struct {
		name  string
		guard gin.HandlerFunc
		token string
		code  string
	}{
		{name: "anonymous", guard: RequireAuth(), token: "", code: apiCode("UNAUTHORIZED")},
		{name: "wrong secret", guard: RequireAuth(), token: issue(t, other, 1, constants.RoleAdmin), code: apiCode("UNAUTHORIZED")},
		{name: "expired", guard: RequireAuth(), token: issue(t, expired, 1, constants.RoleAdmin), code: apiCode("UNAUTHORIZED")},
		{name: "wrong role", guard: RequireRole(constants.RoleAdmin), token: issue(t, tokens, 1, constants.RoleUser), code: apiCode("INSUFFICIENT_ROLE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newSessionRouter(t, tokens, tt.guard)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func apiCode(code string) string {
	return fmt.Sprintf(`"code":%q`, code)
}

func TestGetUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetUserID(c)
	assert.False(t, ok)

	c.Set(constants.ContextKeyUserID, uint64(42))
	id, ok := GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	c.Set(constants.ContextKeyUserID, "42")
	_, ok = GetUserID(c)
	assert.False(t, ok)
}

type record struct {
	ID uint64
}

func TestLoadEntity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	find := func(_ context.Context, id uint64) (*record, error) {
		switch id {
		case 1:
			return &record{ID: 1}, nil
		case 2:
			return nil, errors.New("connection refused")
		default:
			return nil, fmt.Errorf("record %w", services.ErrNotFound)
		}
	}

	called := 0
	r := gin.New()
	r.GET("/records/:id", LoadEntity[record]("record", "Record not found", find, logger.Discard()), func(c *gin.Context) {
		called++
		loaded, ok := GetEntity[record](c, "record")
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": loaded.ID})
	})

	tests := []struct {
		path   string
		status int
	}{
		{path: "/records/1", status: http.StatusOK},
		{path: "/records/2", status: http.StatusInternalServerError},
		{path: "/records/9", status: http.StatusNotFound},
		{path: "/records/abc", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.status, w.Code, tt.path)
	}
	assert.Equal(t, 1, called)
}
