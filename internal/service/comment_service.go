package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tres-colores-api/internal/models"
	"github.com/tres-colores-api/internal/repository"
	"github.com/tres-colores-api/internal/validation"
)

// commentService is the concrete implementation of CommentService.
//
// Lifecycle: pending -> approved | rejected by a moderator decision; an author
// edit returns a non-approved comment to pending and clears the moderation
// fields; approved comments are immutable. Authorization is enforced here, not
// only at the HTTP boundary.
type commentService struct {
	comments repository.CommentRepository
	events   repository.EventRepository
	log      zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repository.CommentRepository, events repository.EventRepository, log zerolog.Logger) CommentService {
	return &commentService{
		comments: comments,
		events:   events,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// Submit creates a new pending comment on an event
func (s *commentService) Submit(ctx context.Context, req *models.SubmitCommentRequest, author models.Viewer) (*models.Comment, error) {
	if err := validation.ValidateSubmitComment(req, author); err != nil {
		return nil, err
	}

	exists, err := s.events.Exists(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if !exists {
		return nil, &validation.Error{Field: "event_id", Message: "unknown event"}
	}

	comment := &models.Comment{
		ID:         uuid.New().String(),
		EventID:    req.EventID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Body:       req.Body,
		Status:     models.StatusPending,
		CreatedAt:  time.Now(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to store comment: %w", err)
	}

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("event_id", comment.EventID).
		Str("author_id", comment.AuthorID).
		Msg("Comment submitted")

	return comment, nil
}

// ListForEvent returns the comments on an event that the viewer may see.
// Visibility is computed at read time: admins see everything, authenticated
// viewers see approved comments plus their own in any state, anonymous
// viewers see approved comments only.
func (s *commentService) ListForEvent(ctx context.Context, eventID string, viewer models.Viewer) ([]*models.Comment, error) {
	all, err := s.comments.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	if viewer.IsAdmin() {
		return all, nil
	}

	visible := make([]*models.Comment, 0, len(all))
	for _, c := range all {
		if c.Status == models.StatusApproved {
			visible = append(visible, c)
			continue
		}
		if !viewer.IsAnonymous() && c.AuthorID == viewer.ID {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

// ListForAuthor returns all of one author's comments in any state. Only the
// author themselves or an admin may ask for it.
func (s *commentService) ListForAuthor(ctx context.Context, authorID string, viewer models.Viewer) ([]*models.Comment, error) {
	if !viewer.IsAdmin() && viewer.ID != authorID {
		return nil, ErrForbidden
	}

	comments, err := s.comments.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// ModerationQueue returns every comment in any state, newest first
func (s *commentService) ModerationQueue(ctx context.Context, viewer models.Viewer) ([]*models.Comment, error) {
	if !viewer.IsAdmin() {
		return nil, ErrForbidden
	}

	comments, err := s.comments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Approve marks a pending comment as approved
func (s *commentService) Approve(ctx context.Context, commentID string, moderator models.Viewer) (*models.Comment, error) {
	return s.decide(ctx, commentID, models.StatusApproved, moderator)
}

// Reject marks a pending comment as rejected
func (s *commentService) Reject(ctx context.Context, commentID string, moderator models.Viewer) (*models.Comment, error) {
	return s.decide(ctx, commentID, models.StatusRejected, moderator)
}

func (s *commentService) decide(ctx context.Context, commentID, status string, moderator models.Viewer) (*models.Comment, error) {
	if !moderator.IsAdmin() {
		return nil, ErrForbidden
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}

	// Conditional write: fails if the comment left pending between the read
	// above and this update
	updated, err := s.comments.SetDecision(ctx, commentID, status, moderator.ID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to store decision: %w", err)
	}
	if !updated {
		return nil, ErrInvalidState
	}

	s.log.Info().
		Str("comment_id", commentID).
		Str("status", status).
		Str("moderator_id", moderator.ID).
		Msg("Comment moderated")

	return s.mustGet(ctx, commentID)
}

func (s *commentService) mustGet(ctx context.Context, commentID string) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

// Edit replaces the body of the requester's own comment and returns it to
// pending for re-review. Approved comments cannot be edited.
func (s *commentService) Edit(ctx context.Context, commentID, newBody string, requester models.Viewer) (*models.Comment, error) {
	if err := validation.ValidateCommentBody(newBody); err != nil {
		return nil, err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if comment.AuthorID != requester.ID {
		return nil, ErrForbidden
	}
	if comment.Status == models.StatusApproved {
		return nil, ErrInvalidState
	}

	updated, err := s.comments.ResetToPending(ctx, commentID, newBody)
	if err != nil {
		return nil, fmt.Errorf("failed to store edit: %w", err)
	}
	if !updated {
		// The comment was approved or deleted after the read above
		current, err := s.comments.GetByID(ctx, commentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get comment: %w", err)
		}
		if current == nil {
			return nil, ErrNotFound
		}
		return nil, ErrInvalidState
	}

	s.log.Info().
		Str("comment_id", commentID).
		Str("author_id", requester.ID).
		Msg("Comment edited, returned to pending")

	return s.mustGet(ctx, commentID)
}

// Delete removes a comment permanently. Authors may delete their own
// comments, admins may delete any.
func (s *commentService) Delete(ctx context.Context, commentID string, requester models.Viewer) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return ErrNotFound
	}
	if !requester.IsAdmin() && comment.AuthorID != requester.ID {
		return ErrForbidden
	}

	deleted, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.log.Info().
		Str("comment_id", commentID).
		Str("requester_id", requester.ID).
		Msg("Comment deleted")

	return nil
}
