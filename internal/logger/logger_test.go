package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/alumni-portal-api/internal/config"
)

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &config.Config{LogLevel: "info", LogFormat: "json"})

	l.Info("hello", "key", "value")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"key":"value"`)
}

func TestNewWithWriter_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &config.Config{LogLevel: "warn", LogFormat: "text"})

	l.Debug("hidden")
	l.Info("hidden too")

	assert.Empty(t, buf.String())
}

func TestMiddleware_LogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, &config.Config{LogLevel: "info", LogFormat: "logfmt"})

	r := gin.New()
	r.Use(Middleware(l))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusTeapot, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))

	require.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, buf.String(), "/ping?x=1")
	assert.Contains(t, buf.String(), "status=418")
}
