package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tres-colores-api/internal/models"
	"github.com/tres-colores-api/internal/service"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// Submit handles POST /v1/comments
func (h *CommentHandler) Submit(c *gin.Context) {
	var req models.SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.services.Comment.Submit(c.Request.Context(), &req, currentViewer(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": comment.ID, "status": comment.Status})
}

// List handles GET /v1/comments?eventId= and GET /v1/comments?authorId=
func (h *CommentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := currentViewer(c)

	if authorID := c.Query("authorId"); authorID != "" {
		comments, err := h.services.Comment.ListForAuthor(ctx, authorID, viewer)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
		return
	}

	eventID := c.Query("eventId")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventId or authorId query parameter is required"})
		return
	}

	comments, err := h.services.Comment.ListForEvent(ctx, eventID, viewer)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}

// ModerationQueue handles GET /v1/comments/moderation-queue
func (h *CommentHandler) ModerationQueue(c *gin.Context) {
	comments, err := h.services.Comment.ModerationQueue(c.Request.Context(), currentViewer(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}

// Decide handles POST /v1/comments/:id/decision
func (h *CommentHandler) Decide(c *gin.Context) {
	var req models.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	viewer := currentViewer(c)
	commentID := c.Param("id")

	var comment *models.Comment
	var err error
	switch req.Decision {
	case models.DecisionApprove:
		comment, err = h.services.Comment.Approve(ctx, commentID, viewer)
	case models.DecisionReject:
		comment, err = h.services.Comment.Reject(ctx, commentID, viewer)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be 'approve' or 'reject'"})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Edit handles PUT /v1/comments/:id
func (h *CommentHandler) Edit(c *gin.Context) {
	var req models.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.services.Comment.Edit(c.Request.Context(), c.Param("id"), req.Body, currentViewer(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.services.Comment.Delete(c.Request.Context(), c.Param("id"), currentViewer(c)); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
