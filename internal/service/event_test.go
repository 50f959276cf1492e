package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/dtroode/eventopia-server/internal/mocks"
	"github.com/dtroode/eventopia-server/internal/model"
	"github.com/dtroode/eventopia-server/internal/testutil"
)

func TestEvent_CreateEvent_ClearsClientID(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewEventStore(t)

	store.On("Insert", ctx, mock.MatchedBy(func(e model.Event) bool {
		return e.ID == "" && e.Title == "Gig"
	})).Return("ev-1", nil).Once()

	svc := NewEvent(store, nil, testutil.MakeNoopLogger())

	id, err := svc.CreateEvent(ctx, model.Event{ID: "client-chosen", Title: "Gig"})
	require.NoError(t, err)
	assert.Equal(t, "ev-1", id)
}

func TestEvent_CreateEvent_StoreError(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewEventStore(t)
	store.On("Insert", ctx, mock.Anything).Return("", assert.AnError).Once()

	svc := NewEvent(store, nil, testutil.MakeNoopLogger())

	_, err := svc.CreateEvent(ctx, model.Event{Title: "Gig"})
	require.ErrorIs(t, err, assert.AnError)
}

func TestEvent_ListOrganizerEvents(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewEventStore(t)
	events := []model.Event{{ID: "1", Organizer: model.Organizer{Email: "a@x.com"}}}
	store.On("FindByOrganizerEmail", ctx, "a@x.com").Return(events, nil).Once()

	svc := NewEvent(store, nil, testutil.MakeNoopLogger())

	got, err := svc.ListOrganizerEvents(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestEvent_GetEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		store := servermocks.NewEventStore(t)
		store.On("FindByID", ctx, "1").Return(model.Event{ID: "1", Title: "Gig"}, nil).Once()

		got, err := NewEvent(store, nil, testutil.MakeNoopLogger()).GetEvent(ctx, "1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Gig", got.Title)
	})

	t.Run("miss is nil", func(t *testing.T) {
		store := servermocks.NewEventStore(t)
		store.On("FindByID", ctx, "2").Return(model.Event{}, model.ErrNotFound).Once()

		got, err := NewEvent(store, nil, testutil.MakeNoopLogger()).GetEvent(ctx, "2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalid id", func(t *testing.T) {
		store := servermocks.NewEventStore(t)
		store.On("FindByID", ctx, "zz").Return(model.Event{}, model.ErrInvalidID).Once()

		_, err := NewEvent(store, nil, testutil.MakeNoopLogger()).GetEvent(ctx, "zz")
		require.ErrorIs(t, err, model.ErrInvalidID)
	})
}

func TestEvent_DeleteEvent_RemovesImage(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewEventStore(t)
	storage := servermocks.NewStorage(t)

	store.On("DeleteByID", ctx, "1").Return(model.DeleteResult{DeletedCount: 1}, nil).Once()
	storage.On("Delete", ctx, "events/1/image").Return(assert.AnError).Once()

	svc := NewEvent(store, storage, testutil.MakeNoopLogger())

	res, err := svc.DeleteEvent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)
}

func TestEvent_DeleteEvent_Miss(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewEventStore(t)
	storage := servermocks.NewStorage(t)

	store.On("DeleteByID", ctx, "1").Return(model.DeleteResult{}, nil).Once()

	svc := NewEvent(store, storage, testutil.MakeNoopLogger())

	res, err := svc.DeleteEvent(ctx, "1")
	require.NoError(t, err)
	assert.Zero(t, res.DeletedCount)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestEvent_UploadImage(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewEventStore(t)
	storage := servermocks.NewStorage(t)
	body := strings.NewReader("png")

	store.On("FindByID", ctx, "1").Return(model.Event{ID: "1"}, nil).Once()
	storage.On("Upload", ctx, "events/1/image", body, int64(3), "image/png").Return(nil).Once()
	store.On("UpdateFields", ctx, "1", mock.MatchedBy(func(u model.EventUpdate) bool {
		return u.Image != nil && *u.Image == "/event/1/image" && u.Title == nil
	})).Return(model.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil).Once()

	svc := NewEvent(store, storage, testutil.MakeNoopLogger())

	res, err := svc.UploadImage(ctx, "1", body, 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)
}

func TestEvent_UploadImage_UnknownEvent(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewEventStore(t)
	storage := servermocks.NewStorage(t)

	store.On("FindByID", ctx, "1").Return(model.Event{}, model.ErrNotFound).Once()

	svc := NewEvent(store, storage, testutil.MakeNoopLogger())

	res, err := svc.UploadImage(ctx, "1", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	assert.Zero(t, res.MatchedCount)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEvent_Images_Disabled(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewEventStore(t)
	svc := NewEvent(store, nil, testutil.MakeNoopLogger())

	_, err := svc.UploadImage(ctx, "1", strings.NewReader("x"), 1, "image/png")
	require.ErrorIs(t, err, ErrImagesDisabled)

	_, err = svc.OpenImage(ctx, "1")
	require.ErrorIs(t, err, ErrImagesDisabled)
}

func TestEvent_OpenImage(t *testing.T) {
	ctx := context.Background()

	t.Run("stored", func(t *testing.T) {
		storage := servermocks.NewStorage(t)
		storage.On("Exists", ctx, "events/1/image").Return(true, nil).Once()
		storage.On("Download", ctx, "events/1/image").Return(io.NopCloser(strings.NewReader("png")), nil).Once()

		svc := NewEvent(servermocks.NewEventStore(t), storage, testutil.MakeNoopLogger())

		rc, err := svc.OpenImage(ctx, "1")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "png", string(data))
	})

	t.Run("missing", func(t *testing.T) {
		storage := servermocks.NewStorage(t)
		storage.On("Exists", ctx, "events/2/image").Return(false, nil).Once()

		svc := NewEvent(servermocks.NewEventStore(t), storage, testutil.MakeNoopLogger())

		_, err := svc.OpenImage(ctx, "2")
		var apiErr *model.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.Status)
	})
}
