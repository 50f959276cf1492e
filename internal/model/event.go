package model

import "context"

// EventStore defines persistence operations for events.
type EventStore interface {
	Insert(ctx context.Context, event Event) (string, error)
	FindAll(ctx context.Context) ([]Event, error)
	FindByOrganizerEmail(ctx context.Context, email string) ([]Event, error)
	// FindByID returns ErrNotFound on a miss and ErrInvalidID for unparseable ids.
	FindByID(ctx context.Context, id string) (Event, error)
	UpdateFields(ctx context.Context, id string, update EventUpdate) (UpdateResult, error)
	DeleteByID(ctx context.Context, id string) (DeleteResult, error)
}

// Organizer is a snapshot of the user who created the event.
type Organizer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

// Event is a published event listing.
type Event struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Venue       string    `json:"venue"`
	Organizer   Organizer `json:"organizer"`
}

// EventUpdate names the mutable fields to replace. Nil fields are left untouched.
type EventUpdate struct {
	Title       *string
	Type        *string
	Date        *string
	Description *string
	Image       *string
	Price       *float64
	Venue       *string
	Organizer   *Organizer
}

// IsEmpty reports whether the update names no fields.
func (u EventUpdate) IsEmpty() bool {
	return u.Title == nil && u.Type == nil && u.Date == nil && u.Description == nil &&
		u.Image == nil && u.Price == nil && u.Venue == nil && u.Organizer == nil
}

// Apply returns a copy of e with the named fields replaced. The id is never changed.
func (u EventUpdate) Apply(e Event) Event {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Type != nil {
		e.Type = *u.Type
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Image != nil {
		e.Image = *u.Image
	}
	if u.Price != nil {
		e.Price = *u.Price
	}
	if u.Venue != nil {
		e.Venue = *u.Venue
	}
	if u.Organizer != nil {
		e.Organizer = *u.Organizer
	}
	return e
}

// UpdateResult mirrors a document store update acknowledgement.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// DeleteResult mirrors a document store delete acknowledgement.
type DeleteResult struct {
	DeletedCount int64
}
