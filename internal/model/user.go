package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	// Create returns ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, user User) (User, error)
}

// User is a registered organizer. Email is the unique key.
type User struct {
	ID    string
	Email string
	Name  string
	Photo string
	// Attributes keeps any extra fields supplied at registration.
	Attributes map[string]any
	CreatedAt  time.Time
}

// RegisterResult is the outcome of an idempotent registration.
type RegisterResult struct {
	Created bool
	ID      string
}
