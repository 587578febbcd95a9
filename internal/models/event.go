package models

import (
	"time"
)

// Event represents a historical event in the catalog
type Event struct {
	ID          string    `json:"id" db:"id"` // slug, e.g. "grito-independencia_bogota"
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Year        int       `json:"year" db:"year"`
	Location    string    `json:"location" db:"location"`
	ImageURL    string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateEventRequest is the payload for creating an event
type CreateEventRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}

// UpdateEventRequest is the payload for updating an event; empty fields are
// left unchanged
type UpdateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}
