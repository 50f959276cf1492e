package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/eventopia-server/internal/model"
)

var _ model.EventStore = (*EventRepository)(nil)

type organizerDocument struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Photo string `bson:"photo"`
}

type eventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Type        string             `bson:"type"`
	Date        string             `bson:"date"`
	Description string             `bson:"description"`
	Image       string             `bson:"image"`
	Price       float64            `bson:"price"`
	Venue       string             `bson:"venue"`
	Organizer   organizerDocument  `bson:"organizer"`
}

func newEventDocument(e model.Event) eventDocument {
	return eventDocument{
		Title:       e.Title,
		Type:        e.Type,
		Date:        e.Date,
		Description: e.Description,
		Image:       e.Image,
		Price:       e.Price,
		Venue:       e.Venue,
		Organizer:   organizerDocument(e.Organizer),
	}
}

func (d eventDocument) toModel() model.Event {
	return model.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Type:        d.Type,
		Date:        d.Date,
		Description: d.Description,
		Image:       d.Image,
		Price:       d.Price,
		Venue:       d.Venue,
		Organizer:   model.Organizer(d.Organizer),
	}
}

type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection)}
}

func (r *EventRepository) Insert(ctx context.Context, event model.Event) (string, error) {
	doc := newEventDocument(event)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}
	return doc.ID.Hex(), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]model.Event, error) {
	return r.find(ctx, bson.D{})
}

func (r *EventRepository) FindByOrganizerEmail(ctx context.Context, email string) ([]model.Event, error) {
	return r.find(ctx, bson.D{{Key: "organizer.email", Value: email}})
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (model.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return model.Event{}, err
	}

	var doc eventDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Event{}, model.ErrNotFound
		}
		return model.Event{}, fmt.Errorf("failed to get event by id: %w", err)
	}
	return doc.toModel(), nil
}

func (r *EventRepository) UpdateFields(ctx context.Context, id string, update model.EventUpdate) (model.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return model.UpdateResult{}, err
	}
	filter := bson.D{{Key: "_id", Value: oid}}

	if update.IsEmpty() {
		matched, err := r.coll.CountDocuments(ctx, filter)
		if err != nil {
			return model.UpdateResult{}, fmt.Errorf("failed to count event: %w", err)
		}
		return model.UpdateResult{MatchedCount: matched}, nil
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: updateDocument(update)}})
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("failed to update event: %w", err)
	}
	return model.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (r *EventRepository) DeleteByID(ctx context.Context, id string) (model.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return model.DeleteResult{}, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("failed to delete event: %w", err)
	}
	return model.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func (r *EventRepository) find(ctx context.Context, filter bson.D) ([]model.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var docs []eventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	events := make([]model.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, doc.toModel())
	}
	return events, nil
}

// updateDocument builds the $set body for the fields named in update.
func updateDocument(update model.EventUpdate) bson.D {
	var set bson.D
	if update.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *update.Title})
	}
	if update.Type != nil {
		set = append(set, bson.E{Key: "type", Value: *update.Type})
	}
	if update.Date != nil {
		set = append(set, bson.E{Key: "date", Value: *update.Date})
	}
	if update.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *update.Description})
	}
	if update.Image != nil {
		set = append(set, bson.E{Key: "image", Value: *update.Image})
	}
	if update.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *update.Price})
	}
	if update.Venue != nil {
		set = append(set, bson.E{Key: "venue", Value: *update.Venue})
	}
	if update.Organizer != nil {
		set = append(set, bson.E{Key: "organizer", Value: organizerDocument(*update.Organizer)})
	}
	return set
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", model.ErrInvalidID, id)
	}
	return oid, nil
}
