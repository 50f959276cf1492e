package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/eventopia-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT id, email, name, photo, attributes, created_at
			  FROM users WHERE email = $1`

	var (
		user model.User
		id   uuid.UUID
	)
	err := r.db.QueryRow(ctx, query, email).Scan(
		&id, &user.Email, &user.Name, &user.Photo, &user.Attributes, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	user.ID = id.String()

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, name, photo, attributes, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, email, name, photo, attributes, created_at`

	attributes := user.Attributes
	if attributes == nil {
		attributes = map[string]any{}
	}

	var (
		saved model.User
		id    uuid.UUID
	)
	err := r.db.QueryRow(ctx, query,
		uuid.New(), user.Email, user.Name, user.Photo, attributes, user.CreatedAt,
	).Scan(
		&id, &saved.Email, &saved.Name, &saved.Photo, &saved.Attributes, &saved.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrAlreadyExists
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	saved.ID = id.String()

	return saved, nil
}
