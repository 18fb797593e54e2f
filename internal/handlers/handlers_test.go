package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/alumni-portal-api/internal/database"
	"github.com/yukikurage/alumni-portal-api/internal/logger"
	"github.com/yukikurage/alumni-portal-api/internal/media"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/repository"
	"github.com/yukikurage/alumni-portal-api/internal/services"
	"github.com/yukikurage/alumni-portal-api/internal/storage"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type handlerTestEnv struct {
	db     *gorm.DB
	store  *storage.Memory
	auth   *services.AuthService
	router *gin.Engine
}

type upload struct {
	field string
	name  string
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.MigrateDatabase(db))

	store := storage.NewMemory("https://cdn.example.com")
	manager := media.NewManager(store, logger.Discard(), 1<<20)
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, tokens)

	r := gin.New()
	RegisterRoutes(r, Dependencies{
		Sessions: cookie.NewStore([]byte("secret")),
		Tokens:   tokens,
		Auth:     authService,
		Users:    services.NewUserService(userRepo, authService, manager),
		Events:   services.NewEventService(repository.NewEventRepository(db), manager),
		News:     services.NewNewsService(repository.NewNewsRepository(db), manager),
		Projects: services.NewProjectService(repository.NewProjectRepository(db), manager),
		Members:  services.NewMemberService(repository.NewMemberRepository(db), userRepo, manager),
		AI:       services.NewAIService(""),
		Logger:   logger.Discard(),
	})

	return handlerTestEnv{
		db:     db,
		store:  store,
		auth:   authService,
		router: r,
	}
}

// login creates a user with role and returns a bearer token for it.
func (e handlerTestEnv) login(t *testing.T, email string, role models.UserRole) string {
	t.Helper()

	_, err := e.auth.Register(context.Background(), services.RegisterInput{
		Email:    email,
		Password: "password123",
		Name:     "Test " + string(role),
		Role:     role,
	})
	require.NoError(t, err)

	_, token, err := e.auth.Login(context.Background(), services.LoginInput{
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return token
}

func (e handlerTestEnv) admin(t *testing.T) string {
	return e.login(t, "admin@example.com", models.RoleAdmin)
}

func (e handlerTestEnv) doJSON(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e handlerTestEnv) doMultipart(t *testing.T, method, path string, fields map[string]string, files []upload, token string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte("bytes of " + f.name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func eventFields() map[string]string {
	return map[string]string{
		"title":       "Gala",
		"description": "d",
		"date":        "2024-12-01",
		"time":        "19:00",
		"location":    "Hall",
		"category":    "Gala",
		"attendees":   "0",
		"upcoming":    "true",
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestAuthHandler_RegisterLoginSession(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "Grace@Example.com",
		"password": "supersecret",
		"name":     "Grace",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "grace@example.com", created["email"])
	assert.Equal(t, "user", created["role"])
	assert.NotContains(t, w.Body.String(), "password")

	w = env.doJSON(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "grace@example.com",
		"password": "supersecret",
		"name":     "Grace",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "grace@example.com",
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	session := decode(t, w)
	user := session["user"].(map[string]interface{})
	assert.Equal(t, "grace@example.com", user["email"])
	assert.Equal(t, "user", user["role"])

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["hasMember"])

	w = env.doJSON(t, http.MethodGet, "/api/auth/session", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginErrorIsGeneric(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.login(t, "known@example.com", models.RoleUser)

	unknown := env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	}, "")
	wrong := env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "known@example.com",
		"password": "not-the-password",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	assert.Equal(t, "Invalid email or password", decode(t, wrong)["message"])
}

func TestRoutes_AdminOnly(t *testing.T) {
	env := setupHandlerTestEnv(t)
	userToken := env.login(t, "user@example.com", models.RoleUser)

	for _, path := range []string{"/api/events", "/api/news", "/api/projects"} {
		w := env.doMultipart(t, http.MethodPost, path, eventFields(), nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w = env.doMultipart(t, http.MethodPost, path, eventFields(), nil, userToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := env.doJSON(t, http.MethodGet, "/api/users", nil, userToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Event{}))
}

func TestEventRoutes_GalaScenario(t *testing.T) {
	env := setupHandlerTestEnv(t)
	token := env.admin(t)

	w := env.doJSON(t, http.MethodPost, "/api/events", map[string]interface{}{
		"title":       "Gala",
		"description": "d",
		"date":        "2024-12-01",
		"time":        "19:00",
		"location":    "Hall",
		"category":    "Gala",
		"attendees":   0,
		"upcoming":    true,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Nil(t, created["image"])
	assert.Equal(t, true, created["upcoming"])
	assert.Equal(t, []interface{}{}, created["images"])

	id := uint64(created["id"].(float64))
	w = env.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/events/%d", id), map[string]bool{"upcoming": false}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	toggled := decode(t, w)
	assert.Equal(t, true, toggled["success"])
	assert.Equal(t, false, toggled["upcoming"])

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/events/%d", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode(t, w)
	assert.Equal(t, false, fetched["upcoming"])
	assert.Equal(t, "Gala", fetched["title"])
}

// imageRoute describes how one entity stores and edits its primary image.
type imageRoute struct {
	name       string
	imageField string
	fields     func() map[string]string
	createPath string
	model      interface{}
	updateReq  func(id interface{}) (string, string)
	deletePath func(id interface{}) string
}

func imageRoutes() []imageRoute {
	entity := func(name, base string, fields func() map[string]string, model interface{}) imageRoute {
		return imageRoute{
			name:       name,
			imageField: "image",
			fields:     fields,
			createPath: base,
			model:      model,
			updateReq: func(id interface{}) (string, string) {
				return http.MethodPut, fmt.Sprintf("%s/%v", base, id)
			},
			deletePath: func(id interface{}) string {
				return fmt.Sprintf("%s/%v", base, id)
			},
		}
	}

	return []imageRoute{
		entity("events", "/api/events", eventFields, &models.Event{}),
		entity("news", "/api/news", newsFields, &models.News{}),
		entity("projects", "/api/projects", projectFields, &models.Project{}),
		{
			name:       "members",
			imageField: "profileImage",
			fields:     memberFields,
			createPath: "/api/members/register",
			model:      &models.Member{},
			updateReq: func(interface{}) (string, string) {
				return http.MethodPost, "/api/members/update"
			},
			deletePath: func(id interface{}) string {
				return fmt.Sprintf("/api/members/%v", id)
			},
		},
	}
}

func newsFields() map[string]string {
	return map[string]string{
		"title":    "Reunion",
		"content":  "We met again.",
		"category": "Community",
		"author":   "Board",
	}
}

func projectFields() map[string]string {
	return map[string]string{
		"title":       "Library",
		"description": "Books for the school",
		"category":    "Education",
		"goal":        "5000",
	}
}

func memberFields() map[string]string {
	return map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"promotion": "2015",
	}
}

func TestRoutes_CreateWithImageThenDeleteLeavesNoObjects(t *testing.T) {
	for _, route := range imageRoutes() {
		t.Run(route.name, func(t *testing.T) {
			env := setupHandlerTestEnv(t)
			token := env.admin(t)

			w := env.doMultipart(t, http.MethodPost, route.createPath, route.fields(), []upload{{field: route.imageField, name: "cover.jpg"}}, token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			created := decode(t, w)
			require.True(t, env.store.Has(created[route.imageField].(string)))
			require.Len(t, env.store.Keys(), 1)

			w = env.doJSON(t, http.MethodDelete, route.deletePath(created["id"]), nil, token)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			assert.Empty(t, env.store.Keys())
			assert.Equal(t, int64(0), countRows(t, env.db, route.model))
		})
	}
}

func TestEventRoutes_GalleryDeletedWithEvent(t *testing.T) {
	env := setupHandlerTestEnv(t)
	token := env.admin(t)

	w := env.doMultipart(t, http.MethodPost, "/api/events", eventFields(), []upload{
		{field: "image", name: "cover.jpg"},
		{field: "images", name: "one.png"},
		{field: "images", name: "two.png"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Len(t, created["images"], 2)
	assert.Len(t, env.store.Keys(), 3)

	id := uint64(created["id"].(float64))
	w = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/events/%d", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Empty(t, env.store.Keys())
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Event{}))

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/events/%d", id), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_DeleteImageFlagClearsImage(t *testing.T) {
	for _, route := range imageRoutes() {
		t.Run(route.name, func(t *testing.T) {
			env := setupHandlerTestEnv(t)
			token := env.admin(t)

			w := env.doMultipart(t, http.MethodPost, route.createPath, route.fields(), []upload{{field: route.imageField, name: "cover.jpg"}}, token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			created := decode(t, w)
			image := created[route.imageField].(string)
			require.True(t, env.store.Has(image))

			fields := route.fields()
			fields["deleteImage"] = "true"
			method, path := route.updateReq(created["id"])
			w = env.doMultipart(t, method, path, fields, nil, token)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			assert.Nil(t, decode(t, w)[route.imageField])
			assert.False(t, env.store.Has(image))
			assert.Empty(t, env.store.Keys())
			assert.Equal(t, int64(1), countRows(t, env.db, route.model))
		})
	}
}

func TestRoutes_ReplaceImageUploadsBeforeDeleting(t *testing.T) {
	for _, route := range imageRoutes() {
		t.Run(route.name, func(t *testing.T) {
			env := setupHandlerTestEnv(t)
			token := env.admin(t)

			w := env.doMultipart(t, http.MethodPost, route.createPath, route.fields(), []upload{{field: route.imageField, name: "old.jpg"}}, token)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			created := decode(t, w)
			oldImage := created[route.imageField].(string)
			opsBefore := len(env.store.Ops())

			method, path := route.updateReq(created["id"])
			w = env.doMultipart(t, method, path, route.fields(), []upload{{field: route.imageField, name: "new.jpg"}}, token)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			newImage := decode(t, w)[route.imageField].(string)

			assert.NotEqual(t, oldImage, newImage)
			assert.True(t, env.store.Has(newImage))
			assert.False(t, env.store.Has(oldImage))

			ops := env.store.Ops()[opsBefore:]
			require.Len(t, ops, 2)
			assert.Equal(t, "put", ops[0].Kind)
			assert.Equal(t, "delete", ops[1].Kind)
			assert.True(t, strings.HasSuffix(oldImage, ops[1].Key))
		})
	}
}

func TestRoutes_UpdateUnknownIDIsNotFoundWithoutWrites(t *testing.T) {
	env := setupHandlerTestEnv(t)
	token := env.admin(t)

	for _, path := range []string{"/api/events/999", "/api/news/999", "/api/projects/999", "/api/members/999"} {
		method := http.MethodPut
		if path == "/api/members/999" {
			method = http.MethodDelete
		}
		w := env.doMultipart(t, method, path, map[string]string{}, []upload{{field: "image", name: "x.jpg"}}, token)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	w := env.doJSON(t, http.MethodPatch, "/api/events/999", map[string]bool{"upcoming": false}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.doJSON(t, http.MethodPatch, "/api/news/999", map[string]bool{"published": true}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.doJSON(t, http.MethodPatch, "/api/projects/999", map[string]bool{"isFinished": true}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Empty(t, env.store.Ops())
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Event{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.News{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Project{}))
}

func TestRoutes_MissingRequiredFieldPersistsNothing(t *testing.T) {
	env := setupHandlerTestEnv(t)
	token := env.admin(t)

	fields := eventFields()
	delete(fields, "title")
	w := env.doMultipart(t, http.MethodPost, "/api/events", fields, []upload{{field: "image", name: "cover.jpg"}}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
	assert.Contains(t, w.Body.String(), `"field":"title"`)

	w = env.doMultipart(t, http.MethodPost, "/api/news", map[string]string{"title": "t", "category": "c", "author": "a"}, nil, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"content"`)

	w = env.doMultipart(t, http.MethodPost, "/api/projects", map[string]string{
		"title": "Scholarship", "description": "d", "category": "c", "goal": "abc",
	}, nil, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"goal"`)

	assert.Empty(t, env.store.Ops())
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Event{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.News{}))
	assert.Equal(t, int64(0), countRows(t, env.db, &models.Project{}))
}

func TestRoutes_ToggleChangesOnlyFlag(t *testing.T) {
	env := setupHandlerTestEnv(t)
	token := env.admin(t)

	w := env.doMultipart(t, http.MethodPost, "/api/news", map[string]string{
		"title": "Reunion", "content": "We met again.", "category": "Events", "author": "Board",
	}, []upload{{field: "image", name: "reunion.jpg"}}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint64(decode(t, w)["id"].(float64))

	var before models.News
	require.NoError(t, env.db.First(&before, id).Error)
	require.False(t, before.Published)

	w = env.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/news/%d", id), map[string]bool{"published": true}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["published"])

	var after models.News
	require.NoError(t, env.db.First(&after, id).Error)
	assert.True(t, after.Published)
	assert.Nil(t, after.PublishedAt)
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))

	after.Published = before.Published
	after.UpdatedAt = before.UpdatedAt
	assert.Equal(t, before, after)

	w = env.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/news/%d", id), map[string]interface{}{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewsRoutes_DraftsHiddenFromPublic(t *testing.T) {
	env := setupHandlerTestEnv(t)
	token := env.admin(t)

	w := env.doJSON(t, http.MethodPost, "/api/news", map[string]interface{}{
		"title": "Draft", "content": "Not yet.", "category": "c", "author": "a",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	draft := decode(t, w)
	assert.Equal(t, "Not yet.", draft["excerpt"])

	w = env.doJSON(t, http.MethodGet, "/api/news", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var visible []models.News
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &visible))
	assert.Empty(t, visible)

	w = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/news/%v", draft["id"]), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/news?published=false", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Draft")

	w = env.doJSON(t, http.MethodPost, "/api/news/excerpt", map[string]string{"content": "text"}, token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProjectRoutes_FinishedFields(t *testing.T) {
	env := setupHandlerTestEnv(t)
	token := env.admin(t)

	w := env.doMultipart(t, http.MethodPost, "/api/projects", map[string]string{
		"title":              "Library",
		"description":        "Books",
		"category":           "Education",
		"goal":               "5000",
		"raised":             "1200.50",
		"testimonialAuthor":  "Ada",
		"testimonialContent": "Thanks",
		"totalRaised":        "1200.50",
	}, nil, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	current := decode(t, w)
	assert.Nil(t, current["testimonial"])
	assert.Nil(t, current["totalRaised"])
	assert.Equal(t, 1200.5, current["raised"])

	w = env.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/projects/%v", current["id"]), map[string]bool{"isFinished": true}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["isFinished"])

	w = env.doJSON(t, http.MethodGet, "/api/projects?finished=true", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var finished []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &finished))
	require.Len(t, finished, 1)
	assert.Equal(t, "Library", finished[0]["title"])

	w = env.doJSON(t, http.MethodGet, "/api/projects?finished=maybe", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemberRoutes_RegisterTwiceConflicts(t *testing.T) {
	env := setupHandlerTestEnv(t)
	token := env.login(t, "ada@example.com", models.RoleUser)

	fields := map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"promotion": "2015",
		"company":   "Analytical Engines",
	}

	w := env.doMultipart(t, http.MethodPost, "/api/members/register", fields, []upload{{field: "profileImage", name: "ada.jpg"}}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	member := decode(t, w)
	assert.Equal(t, "ada@example.com", member["email"])
	assert.NotNil(t, member["profileImage"])

	w = env.doMultipart(t, http.MethodPost, "/api/members/register", fields, nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, int64(1), countRows(t, env.db, &models.Member{}))

	w = env.doJSON(t, http.MethodGet, "/api/members/register", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", decode(t, w)["firstName"])

	fields["position"] = "Engineer"
	w = env.doMultipart(t, http.MethodPost, "/api/members/update", fields, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Engineer", decode(t, w)["position"])

	w = env.doMultipart(t, http.MethodPost, "/api/members/register", fields, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMemberRoutes_DirectoryPagination(t *testing.T) {
	env := setupHandlerTestEnv(t)

	for i := 1; i <= 25; i++ {
		require.NoError(t, env.db.Create(&models.Member{
			UserID:    uint64(i),
			FirstName: fmt.Sprintf("Member%02d", i),
			LastName:  "Smith",
			Promotion: 2010,
			Company:   "Acme",
		}).Error)
	}
	require.NoError(t, env.db.Create(&models.Member{
		UserID: 100, FirstName: "Other", LastName: "Person", Promotion: 2011, Company: "Globex",
	}).Error)

	w := env.doJSON(t, http.MethodGet, "/api/members?company=acme&page=2&limit=12", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Members    []models.Member          `json:"members"`
		Pagination utils.PaginationResponse `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Members, 12)
	assert.Equal(t, int64(25), resp.Pagination.TotalCount)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.True(t, resp.Pagination.HasPrevPage)

	w = env.doJSON(t, http.MethodGet, "/api/members?promotion=2011", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Members, 1)
	assert.Equal(t, "Other", resp.Members[0].FirstName)

	w = env.doJSON(t, http.MethodGet, "/api/members?promotion=twenty", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserRoutes_AdminManagement(t *testing.T) {
	env := setupHandlerTestEnv(t)
	token := env.admin(t)

	w := env.doJSON(t, http.MethodPost, "/api/users", map[string]string{
		"email":    "editor@example.com",
		"password": "password123",
		"name":     "Editor",
		"role":     "admin",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "admin", created["role"])

	w = env.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/users/%v/role", created["id"]), map[string]string{"role": "user"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "user", decode(t, w)["role"])

	w = env.doJSON(t, http.MethodPatch, fmt.Sprintf("/api/users/%v/role", created["id"]), map[string]string{"role": "owner"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/users", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.Len(t, list["users"], 2)

	w = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/users/%v", created["id"]), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(1), countRows(t, env.db, &models.User{}))

	w = env.doJSON(t, http.MethodDelete, "/api/users/999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
