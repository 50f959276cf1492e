package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/eventopia-server/internal/model"
)

// EventStore is a mock of model.EventStore.
type EventStore struct {
	mock.Mock
}

func NewEventStore(t testingT) *EventStore {
	m := &EventStore{}
	register(&m.Mock, t)
	return m
}

func (m *EventStore) Insert(ctx context.Context, event model.Event) (string, error) {
	ret := m.Called(ctx, event)
	return ret.String(0), ret.Error(1)
}

func (m *EventStore) FindAll(ctx context.Context) ([]model.Event, error) {
	ret := m.Called(ctx)
	var events []model.Event
	if v := ret.Get(0); v != nil {
		events = v.([]model.Event)
	}
	return events, ret.Error(1)
}

func (m *EventStore) FindByOrganizerEmail(ctx context.Context, email string) ([]model.Event, error) {
	ret := m.Called(ctx, email)
	var events []model.Event
	if v := ret.Get(0); v != nil {
		events = v.([]model.Event)
	}
	return events, ret.Error(1)
}

func (m *EventStore) FindByID(ctx context.Context, id string) (model.Event, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.Event), ret.Error(1)
}

func (m *EventStore) UpdateFields(ctx context.Context, id string, update model.EventUpdate) (model.UpdateResult, error) {
	ret := m.Called(ctx, id, update)
	return ret.Get(0).(model.UpdateResult), ret.Error(1)
}

func (m *EventStore) DeleteByID(ctx context.Context, id string) (model.DeleteResult, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.DeleteResult), ret.Error(1)
}

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func NewUserStore(t testingT) *UserStore {
	m := &UserStore{}
	register(&m.Mock, t)
	return m
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ret := m.Called(ctx, email)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	ret := m.Called(ctx, user)
	return ret.Get(0).(model.User), ret.Error(1)
}

// Storage is a mock of model.Storage.
type Storage struct {
	mock.Mock
}

func NewStorage(t testingT) *Storage {
	m := &Storage{}
	register(&m.Mock, t)
	return m
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	ret := m.Called(ctx, key, reader, size, contentType)
	return ret.Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ret := m.Called(ctx, key)
	var rc io.ReadCloser
	if v := ret.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, ret.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	ret := m.Called(ctx, key)
	return ret.Error(0)
}

func (m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	ret := m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}
