package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dtroode/eventopia-server/internal/logger"
	"github.com/dtroode/eventopia-server/internal/model"
)

// ErrImagesDisabled is returned by image operations when no storage is configured.
var ErrImagesDisabled = errors.New("event images are disabled")

type Event struct {
	eventStore model.EventStore
	storage    model.Storage
	logger     *logger.Logger
}

// NewEvent creates the event service. storage may be nil, in which case image
// operations return ErrImagesDisabled.
func NewEvent(eventStore model.EventStore, storage model.Storage, logger *logger.Logger) *Event {
	return &Event{
		eventStore: eventStore,
		storage:    storage,
		logger:     logger,
	}
}

func (s *Event) CreateEvent(ctx context.Context, event model.Event) (string, error) {
	event.ID = ""

	id, err := s.eventStore.Insert(ctx, event)
	if err != nil {
		s.logger.Error("Event service: failed to insert event",
			"organizer_email", event.Organizer.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to insert event: %w", err)
	}

	s.logger.Info("Event service: event created",
		"event_id", id,
		"organizer_email", event.Organizer.Email)

	return id, nil
}

func (s *Event) ListEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.eventStore.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *Event) ListOrganizerEvents(ctx context.Context, email string) ([]model.Event, error) {
	events, err := s.eventStore.FindByOrganizerEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by organizer: %w", err)
	}
	return events, nil
}

// GetEvent returns nil without an error when no event has the id.
func (s *Event) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.eventStore.FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}
	return &event, nil
}

func (s *Event) UpdateEvent(ctx context.Context, id string, update model.EventUpdate) (model.UpdateResult, error) {
	result, err := s.eventStore.UpdateFields(ctx, id, update)
	if err != nil {
		s.logger.Error("Event service: failed to update event",
			"event_id", id,
			"error", err.Error())
		return model.UpdateResult{}, fmt.Errorf("failed to update event: %w", err)
	}

	s.logger.Info("Event service: event updated",
		"event_id", id,
		"matched", result.MatchedCount,
		"modified", result.ModifiedCount)

	return result, nil
}

func (s *Event) DeleteEvent(ctx context.Context, id string) (model.DeleteResult, error) {
	result, err := s.eventStore.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error("Event service: failed to delete event",
			"event_id", id,
			"error", err.Error())
		return model.DeleteResult{}, fmt.Errorf("failed to delete event: %w", err)
	}

	if result.DeletedCount > 0 && s.storage != nil {
		if err := s.storage.Delete(ctx, ImageKey(id)); err != nil {
			s.logger.Warn("Event service: failed to delete event image",
				"event_id", id,
				"error", err.Error())
		}
	}

	s.logger.Info("Event service: event deleted",
		"event_id", id,
		"deleted", result.DeletedCount)

	return result, nil
}

// UploadImage stores the image and points the event's image field at it.
// An unknown event yields a zero UpdateResult and nothing is stored.
func (s *Event) UploadImage(ctx context.Context, id string, reader io.Reader, size int64, contentType string) (model.UpdateResult, error) {
	if s.storage == nil {
		return model.UpdateResult{}, ErrImagesDisabled
	}

	if _, err := s.eventStore.FindByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.UpdateResult{}, nil
		}
		return model.UpdateResult{}, fmt.Errorf("failed to get event by id: %w", err)
	}

	if err := s.storage.Upload(ctx, ImageKey(id), reader, size, contentType); err != nil {
		s.logger.Error("Event service: failed to upload image",
			"event_id", id,
			"error", err.Error())
		return model.UpdateResult{}, fmt.Errorf("failed to upload image: %w", err)
	}

	ref := ImageRef(id)
	return s.UpdateEvent(ctx, id, model.EventUpdate{Image: &ref})
}

// OpenImage returns a reader over the event's stored image.
func (s *Event) OpenImage(ctx context.Context, id string) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, ErrImagesDisabled
	}

	key := ImageKey(id)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if !exists {
		return nil, model.NewErrImageNotFound()
	}

	reader, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	return reader, nil
}

// ImageKey is the object key an event's image is stored under.
func ImageKey(id string) string {
	return "events/" + id + "/image"
}

// ImageRef is the public path an event's stored image is served from.
func ImageRef(id string) string {
	return "/event/" + id + "/image"
}
