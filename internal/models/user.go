package models

import (
	"time"
)

// User represents a registered account. Email is the primary identity and is
// what comments carry as their author id.
type User struct {
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	RoleAdmin: true,
	RoleUser:  true,
}

// Viewer is the requester identity handed to services. The zero value is an
// anonymous viewer.
type Viewer struct {
	ID   string // account email; empty for anonymous
	Name string
	Role string
}

// IsAnonymous reports whether the viewer carries no identity.
func (v Viewer) IsAnonymous() bool {
	return v.ID == ""
}

// IsAdmin reports whether the viewer may moderate comments and manage events.
func (v Viewer) IsAdmin() bool {
	return v.Role == RoleAdmin
}

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8
