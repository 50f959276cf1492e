package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/eventopia-server/internal/logger"
	"github.com/dtroode/eventopia-server/internal/model"
)

type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		logger:    logger,
	}
}

// Register stores the user unless one with the same email exists.
//
// The lookup and the insert are separate calls. Two concurrent registrations
// can both miss the lookup; the store's unique email constraint then rejects
// the second insert, which is reported as not created.
func (s *User) Register(ctx context.Context, user model.User) (model.RegisterResult, error) {
	s.logger.Debug("User service: registering user", "email", user.Email)

	_, err := s.userStore.GetByEmail(ctx, user.Email)
	if err == nil {
		s.logger.Info("User service: user already exists", "email", user.Email)
		return model.RegisterResult{Created: false}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("User service: failed to get user by email",
			"email", user.Email,
			"error", err.Error())
		return model.RegisterResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	saved, err := s.userStore.Create(ctx, user)
	if errors.Is(err, model.ErrAlreadyExists) {
		s.logger.Info("User service: user registered concurrently", "email", user.Email)
		return model.RegisterResult{Created: false}, nil
	}
	if err != nil {
		s.logger.Error("User service: failed to create user",
			"email", user.Email,
			"error", err.Error())
		return model.RegisterResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user registered",
		"email", saved.Email,
		"user_id", saved.ID)

	return model.RegisterResult{Created: true, ID: saved.ID}, nil
}
