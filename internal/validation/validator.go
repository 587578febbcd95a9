package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tres-colores-api/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)
)

// Error represents a single validation error on a request field
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSubmitComment validates a comment submission. Author identity comes
// from the authenticated viewer, not the request body.
func ValidateSubmitComment(req *models.SubmitCommentRequest, viewer models.Viewer) *Error {
	if strings.TrimSpace(req.EventID) == "" {
		return &Error{Field: "event_id", Message: "event_id is required"}
	}
	if viewer.ID == "" {
		return &Error{Field: "author_id", Message: "author identity is required"}
	}
	if viewer.Name == "" {
		return &Error{Field: "author_name", Message: "author display name is required"}
	}
	return ValidateCommentBody(req.Body)
}

// ValidateCommentBody validates a comment body for submit and edit
func ValidateCommentBody(body string) *Error {
	if strings.TrimSpace(body) == "" {
		return &Error{Field: "body", Message: "body is required"}
	}
	if len(body) > models.MaxCommentLength {
		return &Error{Field: "body", Message: fmt.Sprintf("body exceeds %d characters", models.MaxCommentLength)}
	}
	return nil
}

// ValidateEvent validates an event creation request
func ValidateEvent(req *models.CreateEventRequest) *Error {
	if req.ID == "" {
		return &Error{Field: "id", Message: "id is required"}
	}
	if !slugRegex.MatchString(req.ID) {
		return &Error{Field: "id", Message: "id must be a lowercase slug"}
	}
	if strings.TrimSpace(req.Title) == "" {
		return &Error{Field: "title", Message: "title is required"}
	}
	return nil
}

// ValidateRegister validates a registration request
func ValidateRegister(req *models.RegisterRequest) *Error {
	if req.Email == "" {
		return &Error{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(req.Email) {
		return &Error{Field: "email", Message: "invalid email format"}
	}
	if strings.TrimSpace(req.Name) == "" {
		return &Error{Field: "name", Message: "name is required"}
	}
	if len(req.Password) < models.MinPasswordLength {
		return &Error{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", models.MinPasswordLength)}
	}
	return nil
}
