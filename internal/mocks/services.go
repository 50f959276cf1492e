package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/eventopia-server/internal/model"
)

// EventService is a mock of the event service consumed by handlers.
type EventService struct {
	mock.Mock
}

func NewEventService(t testingT) *EventService {
	m := &EventService{}
	register(&m.Mock, t)
	return m
}

func (m *EventService) CreateEvent(ctx context.Context, event model.Event) (string, error) {
	ret := m.Called(ctx, event)
	return ret.String(0), ret.Error(1)
}

func (m *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	ret := m.Called(ctx)
	var events []model.Event
	if v := ret.Get(0); v != nil {
		events = v.([]model.Event)
	}
	return events, ret.Error(1)
}

func (m *EventService) ListOrganizerEvents(ctx context.Context, email string) ([]model.Event, error) {
	ret := m.Called(ctx, email)
	var events []model.Event
	if v := ret.Get(0); v != nil {
		events = v.([]model.Event)
	}
	return events, ret.Error(1)
}

func (m *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	ret := m.Called(ctx, id)
	var event *model.Event
	if v := ret.Get(0); v != nil {
		event = v.(*model.Event)
	}
	return event, ret.Error(1)
}

func (m *EventService) UpdateEvent(ctx context.Context, id string, update model.EventUpdate) (model.UpdateResult, error) {
	ret := m.Called(ctx, id, update)
	return ret.Get(0).(model.UpdateResult), ret.Error(1)
}

func (m *EventService) DeleteEvent(ctx context.Context, id string) (model.DeleteResult, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(model.DeleteResult), ret.Error(1)
}

func (m *EventService) UploadImage(ctx context.Context, id string, reader io.Reader, size int64, contentType string) (model.UpdateResult, error) {
	ret := m.Called(ctx, id, reader, size, contentType)
	return ret.Get(0).(model.UpdateResult), ret.Error(1)
}

func (m *EventService) OpenImage(ctx context.Context, id string) (io.ReadCloser, error) {
	ret := m.Called(ctx, id)
	var rc io.ReadCloser
	if v := ret.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, ret.Error(1)
}

// UserService is a mock of the user service consumed by handlers.
type UserService struct {
	mock.Mock
}

func NewUserService(t testingT) *UserService {
	m := &UserService{}
	register(&m.Mock, t)
	return m
}

func (m *UserService) Register(ctx context.Context, user model.User) (model.RegisterResult, error) {
	ret := m.Called(ctx, user)
	return ret.Get(0).(model.RegisterResult), ret.Error(1)
}
