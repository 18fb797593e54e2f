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

type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *log.Logger
}

func NewProjectHandler(projectService *services.ProjectService, logger *log.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects returns projects newest first
// Can filter by finished and category
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	finished, ok := queryBool(c, "finished")
	if !ok {
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), repository.ProjectFilter{
		Finished: finished,
		Category: strings.TrimSpace(c.Query("category")),
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProject returns a specific project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetEntity[models.Project](c, constants.ContextKeyProject)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project with its cover image
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var form dto.ProjectForm
	if !bind(c, &form) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject replaces a project's fields and reconciles its cover image
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := middleware.GetEntity[models.Project](c, constants.ContextKeyProject)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	var form dto.ProjectForm
	if !bind(c, &form) {
		return
	}

	updated, err := h.projectService.Update(c.Request.Context(), project, form)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

// ToggleFinished moves a project between the current and finished lists
func (h *ProjectHandler) ToggleFinished(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.FinishedToggle
	if !bindJSON(c, &req) {
		return
	}

	updatedAt, err := h.projectService.SetFinished(c.Request.Context(), id, *req.IsFinished)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"isFinished": *req.IsFinished,
		"updatedAt":  updatedAt,
	})
}

// DeleteProject removes a project and its cover image
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := middleware.GetEntity[models.Project](c, constants.ContextKeyProject)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), project); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}
