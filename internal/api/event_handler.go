package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tres-colores-api/internal/models"
	"github.com/tres-colores-api/internal/service"
)

// EventHandler handles event catalog endpoints
type EventHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(services *service.Services, log zerolog.Logger) *EventHandler {
	return &EventHandler{
		services: services,
		log:      log.With().Str("handler", "event").Logger(),
	}
}

// List handles GET /v1/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.services.Event.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// Get handles GET /v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.services.Event.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Create handles POST /v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	event, err := h.services.Event.Create(c.Request.Context(), &req, currentViewer(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// Update handles PUT /v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	event, err := h.services.Event.Update(c.Request.Context(), c.Param("id"), &req, currentViewer(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.services.Event.Delete(c.Request.Context(), c.Param("id"), currentViewer(c)); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}
