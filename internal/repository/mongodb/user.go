package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dtroode/eventopia-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type userDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	Name       string             `bson:"name"`
	Photo      string             `bson:"photo"`
	Attributes map[string]any     `bson:"attributes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d userDocument) toModel() model.User {
	return model.User{
		ID:         d.ID.Hex(),
		Email:      d.Email,
		Name:       d.Name,
		Photo:      d.Photo,
		Attributes: d.Attributes,
		CreatedAt:  d.CreatedAt,
	}
}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return doc.toModel(), nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	doc := userDocument{
		ID:         primitive.NewObjectID(),
		Email:      user.Email,
		Name:       user.Name,
		Photo:      user.Photo,
		Attributes: user.Attributes,
		CreatedAt:  user.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, model.ErrAlreadyExists
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return doc.toModel(), nil
}
