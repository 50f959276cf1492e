package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/eventopia-server/internal/api/http/response"
	"github.com/dtroode/eventopia-server/internal/logger"
	"github.com/dtroode/eventopia-server/internal/model"
)

const msgUserExists = "User already exists"

// UserService defines user registration.
type UserService interface {
	Register(ctx context.Context, user model.User) (model.RegisterResult, error)
}

// User handles user registration.
type User struct {
	userService UserService
	validator   *Validator
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, validator *Validator, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		validator:   validator,
		logger:      logger,
	}
}

// Register stores the posted user unless the email is taken. Members other
// than email, name and photo are kept as attributes.
func (h *User) Register(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := decodeJSON(w, r, &raw); err != nil {
		writeError(w, err)
		return
	}
	if raw == nil {
		writeError(w, model.NewErrValidation("request body must be a JSON object"))
		return
	}

	req, err := newCreateUserRequest(raw)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Debug("User handler: processing register request", "email", req.Email)

	result, err := h.userService.Register(r.Context(), model.User{
		Email:      req.Email,
		Name:       req.Name,
		Photo:      req.Photo,
		Attributes: extraFields(raw, "_id", "email", "name", "photo"),
	})
	if err != nil {
		h.logger.Error("User handler: register failed",
			"email", req.Email,
			"error", err.Error())
		writeError(w, err)
		return
	}

	if !result.Created {
		response.JSON(w, http.StatusOK, userExistsResult{Message: msgUserExists})
		return
	}
	response.JSON(w, http.StatusOK, insertResult{Acknowledged: true, InsertedID: &result.ID})
}

func newCreateUserRequest(raw map[string]any) (createUserRequest, error) {
	var (
		req createUserRequest
		err error
	)
	if req.Email, err = stringField(raw, "email"); err != nil {
		return createUserRequest{}, err
	}
	if req.Name, err = stringField(raw, "name"); err != nil {
		return createUserRequest{}, err
	}
	if req.Photo, err = stringField(raw, "photo"); err != nil {
		return createUserRequest{}, err
	}
	return req, nil
}
