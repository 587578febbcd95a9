package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tres-colores-api/internal/config"
	"github.com/tres-colores-api/internal/models"
	"github.com/tres-colores-api/internal/repository"
)

// CommentService owns the comment lifecycle: submission, visibility,
// moderation decisions, edits and deletion.
type CommentService interface {
	Submit(ctx context.Context, req *models.SubmitCommentRequest, author models.Viewer) (*models.Comment, error)
	ListForEvent(ctx context.Context, eventID string, viewer models.Viewer) ([]*models.Comment, error)
	ListForAuthor(ctx context.Context, authorID string, viewer models.Viewer) ([]*models.Comment, error)
	ModerationQueue(ctx context.Context, viewer models.Viewer) ([]*models.Comment, error)
	Approve(ctx context.Context, commentID string, moderator models.Viewer) (*models.Comment, error)
	Reject(ctx context.Context, commentID string, moderator models.Viewer) (*models.Comment, error)
	Edit(ctx context.Context, commentID, newBody string, requester models.Viewer) (*models.Comment, error)
	Delete(ctx context.Context, commentID string, requester models.Viewer) error
}

// EventService manages the historical event catalog
type EventService interface {
	Create(ctx context.Context, req *models.CreateEventRequest, requester models.Viewer) (*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, id string, req *models.UpdateEventRequest, requester models.Viewer) (*models.Event, error)
	Delete(ctx context.Context, id string, requester models.Viewer) error
}

// AuthService handles registration, login and token parsing
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	ParseToken(token string) (models.Viewer, error)
}

// Services holds all service interfaces
type Services struct {
	Comment CommentService
	Event   EventService
	Auth    AuthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Comment: NewCommentService(repos.Comment, repos.Event, log),
		Event:   NewEventService(repos.Event, log),
		Auth:    NewAuthService(repos.User, &cfg.Auth, log),
	}
}
