package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tres-colores-api/internal/database"
	"github.com/tres-colores-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

const commentColumns = `id, event_id, author_id, author_name, body, status, moderated_at, moderated_by, created_at, updated_at`

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, event_id, author_id, author_name, body, status, moderated_at, moderated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.EventID, comment.AuthorID, comment.AuthorName,
		comment.Body, comment.Status, comment.ModeratedAt, comment.ModeratedBy,
		comment.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.EventID, &comment.AuthorID, &comment.AuthorName,
		&comment.Body, &comment.Status, &comment.ModeratedAt, &comment.ModeratedBy,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListByEvent returns all comments for one event, oldest first
func (r *commentRepo) ListByEvent(ctx context.Context, eventID string) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE event_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, eventID)
}

// ListByAuthor returns all comments by one author across all events, oldest first
func (r *commentRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE author_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, authorID)
}

// ListAll returns every comment, newest first (moderation queue order)
func (r *commentRepo) ListAll(ctx context.Context) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *commentRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.EventID, &comment.AuthorID, &comment.AuthorName,
			&comment.Body, &comment.Status, &comment.ModeratedAt, &comment.ModeratedBy,
			&comment.CreatedAt, &comment.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}

	return comments, rows.Err()
}

// SetDecision stamps a moderation decision. The status check in the WHERE
// clause makes the write conditional: only one of two racing decisions on the
// same pending comment can succeed.
func (r *commentRepo) SetDecision(ctx context.Context, id, status, moderatorID string, decidedAt time.Time) (bool, error) {
	query := `
		UPDATE comments
		SET status = $2, moderated_at = $3, moderated_by = $4, updated_at = $3
		WHERE id = $1 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query, id, status, decidedAt, moderatorID, models.StatusPending)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// ResetToPending replaces the body and clears the moderation fields. Approved
// comments are excluded in the WHERE clause; the service treats a zero row
// count on an existing approved comment as an invalid-state condition.
func (r *commentRepo) ResetToPending(ctx context.Context, id, body string) (bool, error) {
	query := `
		UPDATE comments
		SET body = $2, status = $3, moderated_at = NULL, moderated_by = NULL, updated_at = now()
		WHERE id = $1 AND status <> $4
	`
	result, err := r.db.ExecContext(ctx, query, id, body, models.StatusPending, models.StatusApproved)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete removes a comment permanently
func (r *commentRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
