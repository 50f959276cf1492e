// Package memory keeps users and events in process memory. Data is lost on
// restart; it backs STORE_DRIVER=memory and the router tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/eventopia-server/internal/model"
)

var (
	_ model.EventStore = (*EventRepository)(nil)
	_ model.UserStore  = (*UserRepository)(nil)
)

type EventRepository struct {
	mu     sync.RWMutex
	order  []string
	events map[string]model.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]model.Event)}
}

func (r *EventRepository) Insert(ctx context.Context, event model.Event) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = uuid.NewString()
	r.events[event.ID] = event
	r.order = append(r.order, event.ID)
	return event.ID, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]model.Event, error) {
	return r.filter(func(model.Event) bool { return true }), nil
}

func (r *EventRepository) FindByOrganizerEmail(ctx context.Context, email string) ([]model.Event, error) {
	return r.filter(func(e model.Event) bool { return e.Organizer.Email == email }), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (model.Event, error) {
	if err := validateID(id); err != nil {
		return model.Event{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return model.Event{}, model.ErrNotFound
	}
	return event, nil
}

func (r *EventRepository) UpdateFields(ctx context.Context, id string, update model.EventUpdate) (model.UpdateResult, error) {
	if err := validateID(id); err != nil {
		return model.UpdateResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.events[id]
	if !ok {
		return model.UpdateResult{}, nil
	}

	updated := update.Apply(current)
	if updated == current {
		return model.UpdateResult{MatchedCount: 1}, nil
	}
	r.events[id] = updated
	return model.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *EventRepository) DeleteByID(ctx context.Context, id string) (model.DeleteResult, error) {
	if err := validateID(id); err != nil {
		return model.DeleteResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return model.DeleteResult{}, nil
	}
	delete(r.events, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return model.DeleteResult{DeletedCount: 1}, nil
}

func (r *EventRepository) filter(keep func(model.Event) bool) []model.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]model.Event, 0, len(r.order))
	for _, id := range r.order {
		if event := r.events[id]; keep(event) {
			events = append(events, event)
		}
	}
	return events
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]model.User)}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return model.User{}, model.ErrAlreadyExists
	}
	user.ID = uuid.NewString()
	r.users[user.Email] = user
	return user, nil
}

// Ping always succeeds.
func (r *EventRepository) Ping(ctx context.Context) error {
	return nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", model.ErrInvalidID, id)
	}
	return nil
}
