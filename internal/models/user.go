package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `db:"id"`

	// Username is the unique login name.
	Username string `db:"username"`

	// Email is the user's email address.
	Email string `db:"email"`

	// Name is the optional display name.
	Name string `db:"name"`

	// PasswordHash is the bcrypt hash of the user's password. Never exposed over the API.
	PasswordHash string `db:"password_hash"`

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64 `db:"created_at"`

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64 `db:"updated_at"`
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(username, email, name, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
