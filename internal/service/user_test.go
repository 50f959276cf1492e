package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/dtroode/eventopia-server/internal/mocks"
	"github.com/dtroode/eventopia-server/internal/model"
	"github.com/dtroode/eventopia-server/internal/testutil"
)

func TestUser_Register_New(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewUserStore(t)

	store.On("GetByEmail", ctx, "a@x.com").Return(model.User{}, model.ErrNotFound).Once()
	store.On("Create", ctx, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "a@x.com" && u.Name == "A" && !u.CreatedAt.IsZero()
	})).Return(model.User{ID: "u-1", Email: "a@x.com"}, nil).Once()

	svc := NewUser(store, testutil.MakeNoopLogger())

	res, err := svc.Register(ctx, model.User{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "u-1", res.ID)
}

func TestUser_Register_Existing(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewUserStore(t)

	store.On("GetByEmail", ctx, "a@x.com").Return(model.User{ID: "u-1", Email: "a@x.com"}, nil).Once()

	svc := NewUser(store, testutil.MakeNoopLogger())

	res, err := svc.Register(ctx, model.User{Email: "a@x.com", Name: "Other"})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Empty(t, res.ID)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUser_Register_LostRace(t *testing.T) {
	ctx := context.Background()
	store := servermocks.NewUserStore(t)

	store.On("GetByEmail", ctx, "a@x.com").Return(model.User{}, model.ErrNotFound).Once()
	store.On("Create", ctx, mock.Anything).Return(model.User{}, model.ErrAlreadyExists).Once()

	svc := NewUser(store, testutil.MakeNoopLogger())

	res, err := svc.Register(ctx, model.User{Email: "a@x.com"})
	require.NoError(t, err)
	assert.False(t, res.Created)
}

func TestUser_Register_StoreErrors(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		ctx := context.Background()
		store := servermocks.NewUserStore(t)
		store.On("GetByEmail", ctx, "a@x.com").Return(model.User{}, assert.AnError).Once()

		svc := NewUser(store, testutil.MakeNoopLogger())

		_, err := svc.Register(ctx, model.User{Email: "a@x.com"})
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("create", func(t *testing.T) {
		ctx := context.Background()
		store := servermocks.NewUserStore(t)
		store.On("GetByEmail", ctx, "a@x.com").Return(model.User{}, model.ErrNotFound).Once()
		store.On("Create", ctx, mock.Anything).Return(model.User{}, assert.AnError).Once()

		svc := NewUser(store, testutil.MakeNoopLogger())

		_, err := svc.Register(ctx, model.User{Email: "a@x.com"})
		require.ErrorIs(t, err, assert.AnError)
	})
}
