package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/dtroode/eventopia-server/internal/model"
)

func eventBSON(id primitive.ObjectID, title, email string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "type", Value: "concert"},
		{Key: "price", Value: 12.5},
		{Key: "organizer", Value: bson.D{
			{Key: "name", Value: "Org"},
			{Key: "email", Value: email},
			{Key: "photo", Value: ""},
		}},
	}
}

func TestEventRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert returns hex id", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Insert(ctx, model.Event{Title: "Gig"})
		require.NoError(mt, err)
		assert.True(mt, primitive.IsValidObjectID(id))
	})

	mt.Run("find by organizer", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.events", mtest.FirstBatch,
			eventBSON(id, "Gig", "a@x.com")))

		events, err := repo.FindByOrganizerEmail(ctx, "a@x.com")
		require.NoError(mt, err)
		require.Len(mt, events, 1)
		assert.Equal(mt, id.Hex(), events[0].ID)
		assert.Equal(mt, "a@x.com", events[0].Organizer.Email)
		assert.Equal(mt, 12.5, events[0].Price)
	})

	mt.Run("find all empty", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.events", mtest.FirstBatch))

		events, err := repo.FindAll(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, events)
		assert.Empty(mt, events)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.events", mtest.FirstBatch,
			eventBSON(id, "Gig", "a@x.com")))

		event, err := repo.FindByID(ctx, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Gig", event.Title)
	})

	mt.Run("find by id miss", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.events", mtest.FirstBatch))

		_, err := repo.FindByID(ctx, primitive.NewObjectID().Hex())
		require.ErrorIs(mt, err, model.ErrNotFound)
	})

	mt.Run("invalid id", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)

		_, err := repo.FindByID(ctx, "nope")
		require.ErrorIs(mt, err, model.ErrInvalidID)
		_, err = repo.UpdateFields(ctx, "nope", model.EventUpdate{})
		require.ErrorIs(mt, err, model.ErrInvalidID)
		_, err = repo.DeleteByID(ctx, "nope")
		require.ErrorIs(mt, err, model.ErrInvalidID)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		title := "New"
		res, err := repo.UpdateFields(ctx, primitive.NewObjectID().Hex(), model.EventUpdate{Title: &title})
		require.NoError(mt, err)
		assert.Equal(mt, model.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, res)
	})

	mt.Run("empty update counts", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.events", mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(1)}}))

		res, err := repo.UpdateFields(ctx, primitive.NewObjectID().Hex(), model.EventUpdate{})
		require.NoError(mt, err)
		assert.Equal(mt, model.UpdateResult{MatchedCount: 1}, res)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewEventRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		res, err := repo.DeleteByID(ctx, primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.DeletedCount)
	})
}

func TestUpdateDocument(t *testing.T) {
	venue := "Hall"
	price := 0.0
	org := model.Organizer{Name: "A", Email: "a@x.com"}

	set := updateDocument(model.EventUpdate{Venue: &venue, Price: &price, Organizer: &org})

	assert.Equal(t, bson.D{
		{Key: "price", Value: 0.0},
		{Key: "venue", Value: "Hall"},
		{Key: "organizer", Value: organizerDocument{Name: "A", Email: "a@x.com"}},
	}, set)
	assert.Empty(t, updateDocument(model.EventUpdate{}))
}
