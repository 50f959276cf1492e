package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/eventopia-server/internal/model"
)

const maxBodyBytes = 1 << 20

type organizerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo"`
}

func (o organizerRequest) model() model.Organizer {
	return model.Organizer{Name: o.Name, Email: o.Email, Photo: o.Photo}
}

type createEventRequest struct {
	Title       string           `json:"title" validate:"required"`
	Type        string           `json:"type"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Price       float64          `json:"price" validate:"gte=0"`
	Venue       string           `json:"venue"`
	Organizer   organizerRequest `json:"organizer"`
}

func (r createEventRequest) model() model.Event {
	return model.Event{
		Title:       r.Title,
		Type:        r.Type,
		Date:        r.Date,
		Description: r.Description,
		Image:       r.Image,
		Price:       r.Price,
		Venue:       r.Venue,
		Organizer:   r.Organizer.model(),
	}
}

type updateEventRequest struct {
	Title       *string           `json:"title"`
	Type        *string           `json:"type"`
	Date        *string           `json:"date"`
	Description *string           `json:"description"`
	Image       *string           `json:"image"`
	Price       *float64          `json:"price" validate:"omitempty,gte=0"`
	Venue       *string           `json:"venue"`
	Organizer   *organizerRequest `json:"organizer"`
}

func (r updateEventRequest) model() model.EventUpdate {
	update := model.EventUpdate{
		Title:       r.Title,
		Type:        r.Type,
		Date:        r.Date,
		Description: r.Description,
		Image:       r.Image,
		Price:       r.Price,
		Venue:       r.Venue,
	}
	if r.Organizer != nil {
		org := r.Organizer.model()
		update.Organizer = &org
	}
	return update
}

type createUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type insertResult struct {
	Acknowledged bool    `json:"acknowledged"`
	InsertedID   *string `json:"insertedId"`
}

type userExistsResult struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

type updateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type deleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func newUpdateResult(res model.UpdateResult) updateResult {
	return updateResult{Acknowledged: true, MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
}

func newDeleteResult(res model.DeleteResult) deleteResult {
	return deleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}

// Validator checks request bodies, reporting fields by their JSON names.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and converts failures into a 400 APIError.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return model.NewErrValidation("invalid request body")
	}
	fe := fieldErrs[0]
	field := strings.TrimPrefix(fe.Namespace(), rootNamespace(fe))
	return model.NewErrValidation("field %q failed on %q", field, fe.Tag())
}

// Email validates a single email address.
func (v *Validator) Email(email string) error {
	if err := v.validate.Var(email, "required,email"); err != nil {
		return model.NewErrValidation("field %q failed on %q", model.ClaimEmail, "email")
	}
	return nil
}

func rootNamespace(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[:i+1]
	}
	return ""
}

// decodeJSON reads a single JSON value from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return model.NewErrValidation("request body too large")
		case errors.Is(err, io.EOF):
			return model.NewErrValidation("request body is empty")
		default:
			return model.NewErrValidation("malformed request body: %v", err)
		}
	}
	if dec.More() {
		return model.NewErrValidation("request body must contain a single JSON value")
	}
	return nil
}

// extraFields returns the members of raw not named in known.
func extraFields(raw map[string]any, known ...string) map[string]any {
	var extra map[string]any
	for k, v := range raw {
		skip := false
		for _, name := range known {
			if k == name {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", model.NewErrValidation("field %q must be a string", key)
	}
	return s, nil
}
