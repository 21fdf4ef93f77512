// internal/models/user.go
package models

import (
	"time"
)

// UserProfile is the account record shown on the profile screen. The
// password hash never leaves the server; JSON output carries only the
// public fields.
type UserProfile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"last_updated"`
}
