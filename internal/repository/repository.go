package repository

import (
	"context"
	"time"

	"github.com/tres-colores-api/internal/database"
	"github.com/tres-colores-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// EventRepository defines the interface for event catalog operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations.
// SetDecision and ResetToPending take the expected current status in the
// write condition so concurrent moderation decisions cannot both apply.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByEvent(ctx context.Context, eventID string) ([]*models.Comment, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Comment, error)
	ListAll(ctx context.Context) ([]*models.Comment, error)
	SetDecision(ctx context.Context, id, status, moderatorID string, decidedAt time.Time) (bool, error)
	ResetToPending(ctx context.Context, id, body string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Event   EventRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Event:   NewEventRepo(db),
		Comment: NewCommentRepo(db),
	}
}
