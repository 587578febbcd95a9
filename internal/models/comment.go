package models

import (
	"time"
)

// Comment represents a user-submitted remark attached to one historical event.
// Status, ModeratedAt and ModeratedBy move together: a comment is pending
// exactly when both moderation fields are null.
type Comment struct {
	ID          string     `json:"id" db:"id"`
	EventID     string     `json:"event_id" db:"event_id"`
	AuthorID    string     `json:"author_id" db:"author_id"`
	AuthorName  string     `json:"author_name" db:"author_name"`
	Body        string     `json:"body" db:"body"`
	Status      string     `json:"status" db:"status"`
	ModeratedAt *time.Time `json:"moderated_at,omitempty" db:"moderated_at"`
	ModeratedBy *string    `json:"moderated_by,omitempty" db:"moderated_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Comment moderation statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatuses defines allowed comment moderation statuses
var ValidStatuses = map[string]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// IsPending reports whether the comment still awaits a moderation decision.
func (c *Comment) IsPending() bool {
	return c.Status == StatusPending
}

// SubmitCommentRequest is the payload for creating a comment
type SubmitCommentRequest struct {
	EventID string `json:"event_id"`
	Body    string `json:"body"`
}

// EditCommentRequest is the payload for editing a comment
type EditCommentRequest struct {
	Body string `json:"body"`
}

// DecisionRequest is the payload for a moderation decision
type DecisionRequest struct {
	Decision string `json:"decision"`
}

// Moderation decisions accepted by the decision endpoint
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// MaxCommentLength is the maximum allowed characters in a comment body
const MaxCommentLength = 5000
