package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tres-colores-api/internal/models"
	"github.com/tres-colores-api/internal/repository"
	"github.com/tres-colores-api/internal/validation"
)

// eventService is the concrete implementation of EventService
type eventService struct {
	events repository.EventRepository
	log    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(events repository.EventRepository, log zerolog.Logger) EventService {
	return &eventService{
		events: events,
		log:    log.With().Str("service", "event").Logger(),
	}
}

// Create adds a new historical event to the catalog. Admin only.
func (s *eventService) Create(ctx context.Context, req *models.CreateEventRequest, requester models.Viewer) (*models.Event, error) {
	if !requester.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validation.ValidateEvent(req); err != nil {
		return nil, err
	}

	exists, err := s.events.Exists(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	event := &models.Event{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now(),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}

	s.log.Info().Str("event_id", event.ID).Str("title", event.Title).Msg("Event created")
	return event, nil
}

// Get retrieves one event
func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrNotFound
	}
	return event, nil
}

// List returns all events ordered by year
func (s *eventService) List(ctx context.Context) ([]*models.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Update replaces the provided fields of an event. Admin only. Empty request
// fields keep their current value.
func (s *eventService) Update(ctx context.Context, id string, req *models.UpdateEventRequest, requester models.Viewer) (*models.Event, error) {
	if !requester.IsAdmin() {
		return nil, ErrForbidden
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrNotFound
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Year != 0 {
		event.Year = req.Year
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	if req.ImageURL != "" {
		event.ImageURL = req.ImageURL
	}

	updated, err := s.events.Update(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if !updated {
		return nil, ErrNotFound
	}

	s.log.Info().Str("event_id", id).Msg("Event updated")
	return event, nil
}

// Delete removes an event and, through the schema cascade, its comments.
// Admin only.
func (s *eventService) Delete(ctx context.Context, id string, requester models.Viewer) error {
	if !requester.IsAdmin() {
		return ErrForbidden
	}

	deleted, err := s.events.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.log.Info().Str("event_id", id).Msg("Event deleted")
	return nil
}
