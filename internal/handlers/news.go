package handlers

import (
	"net/http"
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
)

type NewsHandler struct {
	newsService *services.NewsService
	aiService   *services.AIService
	logger      *log.Logger
}

func NewNewsHandler(newsService *services.NewsService, aiService *services.AIService, logger *log.Logger) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
		aiService:   aiService,
		logger:      logger,
	}
}

// ListNews returns articles newest first. Only admins see drafts; they can
// pick a list with ?published=true|false.
func (h *NewsHandler) ListNews(c *gin.Context) {
	published, ok := queryBool(c, "published")
	if !ok {
		return
	}
	if !middleware.IsAdmin(c) {
		visible := true
		published = &visible
	}

	articles, err := h.newsService.List(c.Request.Context(), repository.NewsFilter{
		Published: published,
		Category:  strings.TrimSpace(c.Query("category")),
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, articles)
}

// GetNews returns a specific article. Drafts are hidden from non-admins.
func (h *NewsHandler) GetNews(c *gin.Context) {
	article, ok := middleware.GetEntity[models.News](c, constants.ContextKeyNews)
	if !ok {
		apierrors.InternalError(c, "News article not found in context")
		return
	}

	if !article.Published && !middleware.IsAdmin(c) {
		apierrors.NotFound(c, "News article not found")
		return
	}

	c.JSON(http.StatusOK, article)
}

// CreateNews creates an article with its cover image
func (h *NewsHandler) CreateNews(c *gin.Context) {
	var form dto.NewsForm
	if !bind(c, &form) {
		return
	}

	article, err := h.newsService.Create(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, article)
}

// UpdateNews replaces an article's fields and reconciles its cover image
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	article, ok := middleware.GetEntity[models.News](c, constants.ContextKeyNews)
	if !ok {
		apierrors.InternalError(c, "News article not found in context")
		return
	}

	var form dto.NewsForm
	if !bind(c, &form) {
		return
	}

	updated, err := h.newsService.Update(c.Request.Context(), article, form)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// TogglePublished moves an article between drafts and published articles
func (h *NewsHandler) TogglePublished(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.PublishedToggle
	if !bindJSON(c, &req) {
		return
	}

	updatedAt, err := h.newsService.SetPublished(c.Request.Context(), id, *req.Published)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"published": *req.Published,
		"updatedAt": updatedAt,
	})
}

// DeleteNews removes an article and its cover image
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	article, ok := middleware.GetEntity[models.News](c, constants.ContextKeyNews)
	if !ok {
		apierrors.InternalError(c, "News article not found in context")
		return
	}

	if err := h.newsService.Delete(c.Request.Context(), article); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "News article deleted successfully",
	})
}

// GenerateExcerpt drafts an excerpt for an article body using AI
func (h *NewsHandler) GenerateExcerpt(c *gin.Context) {
	var req dto.ExcerptRequest
	if !bindJSON(c, &req) {
		return
	}

	excerpt, err := h.aiService.GenerateExcerpt(c.Request.Context(), req.Content)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"excerpt": excerpt,
	})
}
