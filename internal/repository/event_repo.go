package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tres-colores-api/internal/database"
	"github.com/tres-colores-api/internal/models"
)

// eventRepo is the concrete implementation of EventRepository
type eventRepo struct {
	db *database.DB
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *database.DB) EventRepository {
	return &eventRepo{db: db}
}

const eventColumns = `id, title, description, year, location, image_url, created_at, updated_at`

// Create inserts a new event
func (r *eventRepo) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, title, description, year, location, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Year,
		event.Location, event.ImageURL, event.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves an event by ID
func (r *eventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event models.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.Year,
		&event.Location, &event.ImageURL, &event.CreatedAt, &event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// Exists checks if an event with the given ID exists
func (r *eventRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// List returns all events ordered by year
func (r *eventRepo) List(ctx context.Context) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY year ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.Year,
			&event.Location, &event.ImageURL, &event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}

// Update replaces the mutable fields of an event
func (r *eventRepo) Update(ctx context.Context, event *models.Event) (bool, error) {
	query := `
		UPDATE events
		SET title = $2, description = $3, year = $4, location = $5, image_url = $6, updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Year,
		event.Location, event.ImageURL,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete removes an event; comments cascade at the database level
func (r *eventRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Count returns the total number of events
func (r *eventRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count)
	return count, err
}
