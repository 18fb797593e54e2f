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

type EventHandler struct {
	eventService *services.EventService
	logger       *log.Logger
}

func NewEventHandler(eventService *services.EventService, logger *log.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// ListEvents returns events newest first
// Can filter by upcoming and category
func (h *EventHandler) ListEvents(c *gin.Context) {
	upcoming, ok := queryBool(c, "upcoming")
	if !ok {
		return
	}

	events, err := h.eventService.List(c.Request.Context(), repository.EventFilter{
		Upcoming: upcoming,
		Category: strings.TrimSpace(c.Query("category")),
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// GetEvent returns a specific event
// Event is already loaded by the LoadEntity middleware
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, ok := middleware.GetEntity[models.Event](c, constants.ContextKeyEvent)
	if !ok {
		apierrors.InternalError(c, "Event not found in context")
		return
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent creates an event with its cover and gallery images
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var form dto.EventForm
	if !bind(c, &form) {
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// UpdateEvent replaces an event's fields and reconciles its images
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	event, ok := middleware.GetEntity[models.Event](c, constants.ContextKeyEvent)
	if !ok {
		apierrors.InternalError(c, "Event not found in context")
		return
	}

	var form dto.EventForm
	if !bind(c, &form) {
		return
	}

	updated, err := h.eventService.Update(c.Request.Context(), event, form)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ToggleUpcoming moves an event between the upcoming and archived lists
func (h *EventHandler) ToggleUpcoming(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpcomingToggle
	if !bindJSON(c, &req) {
		return
	}

	updatedAt, err := h.eventService.SetUpcoming(c.Request.Context(), id, *req.Upcoming)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"upcoming":  *req.Upcoming,
		"updatedAt": updatedAt,
	})
}

// DeleteEvent removes an event and its images
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	event, ok := middleware.GetEntity[models.Event](c, constants.ContextKeyEvent)
	if !ok {
		apierrors.InternalError(c, "Event not found in context")
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), event); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}
