package handler

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/eventopia-server/internal/api/http/response"
	"github.com/dtroode/eventopia-server/internal/logger"
	"github.com/dtroode/eventopia-server/internal/model"
	"github.com/dtroode/eventopia-server/internal/policy"
)

const (
	ParamID    = "id"
	ParamEmail = "email"

	maxImageBytes = 5 << 20
)

// EventService defines business operations on events.
type EventService interface {
	CreateEvent(ctx context.Context, event model.Event) (string, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	ListOrganizerEvents(ctx context.Context, email string) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	UpdateEvent(ctx context.Context, id string, update model.EventUpdate) (model.UpdateResult, error)
	DeleteEvent(ctx context.Context, id string) (model.DeleteResult, error)
	UploadImage(ctx context.Context, id string, reader io.Reader, size int64, contentType string) (model.UpdateResult, error)
	OpenImage(ctx context.Context, id string) (io.ReadCloser, error)
}

// Event handles the event endpoints. Every operation is checked against the
// access policy before it reaches the service.
type Event struct {
	eventService   EventService
	policy         *policy.Policy
	contextManager model.ContextManager
	validator      *Validator
	logger         *logger.Logger
}

// NewEvent creates a new Event handler.
func NewEvent(
	eventService EventService,
	accessPolicy *policy.Policy,
	contextManager model.ContextManager,
	validator *Validator,
	logger *logger.Logger,
) *Event {
	return &Event{
		eventService:   eventService,
		policy:         accessPolicy,
		contextManager: contextManager,
		validator:      validator,
		logger:         logger,
	}
}

func (h *Event) ListEvents(w http.ResponseWriter, r *http.Request) {
	if err := h.policy.Authorize(policy.ListEvents, h.principal(r), ""); err != nil {
		writeError(w, err)
		return
	}

	events, err := h.eventService.ListEvents(r.Context())
	if err != nil {
		h.logger.Error("Event handler: list events failed", "error", err.Error())
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, events)
}

// ListOrganizerEvents lists the events whose organizer email equals the path email.
func (h *Event) ListOrganizerEvents(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, ParamEmail)

	if err := h.policy.Authorize(policy.ListOrganizerEvents, h.principal(r), email); err != nil {
		h.logger.Info("Event handler: list organizer events denied",
			"email", email,
			"error", err.Error())
		writeError(w, err)
		return
	}

	events, err := h.eventService.ListOrganizerEvents(r.Context(), email)
	if err != nil {
		h.logger.Error("Event handler: list organizer events failed",
			"email", email,
			"error", err.Error())
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, events)
}

// GetEvent responds with the event, or null when no event has the id.
func (h *Event) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, ParamID)

	if err := h.policy.Authorize(policy.GetEvent, h.principal(r), ""); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.eventService.GetEvent(r.Context(), id)
	if err != nil {
		h.logger.Error("Event handler: get event failed",
			"event_id", id,
			"error", err.Error())
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, event)
}

func (h *Event) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.policy.Authorize(policy.CreateEvent, h.principal(r), ""); err != nil {
		writeError(w, err)
		return
	}

	var req createEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.eventService.CreateEvent(r.Context(), req.model())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, insertResult{Acknowledged: true, InsertedID: &id})
}

// UpdateEvent replaces the fields present in the body.
func (h *Event) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, ParamID)

	var req updateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	found, err := h.authorizeEvent(r, policy.UpdateEvent, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		response.JSON(w, http.StatusOK, newUpdateResult(model.UpdateResult{}))
		return
	}

	result, err := h.eventService.UpdateEvent(r.Context(), id, req.model())
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, newUpdateResult(result))
}

func (h *Event) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, ParamID)

	found, err := h.authorizeEvent(r, policy.DeleteEvent, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		response.JSON(w, http.StatusOK, newDeleteResult(model.DeleteResult{}))
		return
	}

	result, err := h.eventService.DeleteEvent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, newDeleteResult(result))
}

// UploadImage stores the raw request body as the event's image.
func (h *Event) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, ParamID)

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, model.NewErrValidation("content type %q is not an image", contentType))
		return
	}
	if r.ContentLength > maxImageBytes {
		writeError(w, model.NewErrValidation("image is larger than %d bytes", maxImageBytes))
		return
	}

	found, err := h.authorizeEvent(r, policy.UploadEventImage, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		response.JSON(w, http.StatusOK, newUpdateResult(model.UpdateResult{}))
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxImageBytes)
	result, err := h.eventService.UploadImage(r.Context(), id, body, r.ContentLength, contentType)
	if err != nil {
		h.logger.Error("Event handler: upload image failed",
			"event_id", id,
			"error", err.Error())
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, newUpdateResult(result))
}

// DownloadImage streams the event's stored image.
func (h *Event) DownloadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, ParamID)

	if err := h.policy.Authorize(policy.DownloadEventImage, h.principal(r), ""); err != nil {
		writeError(w, err)
		return
	}

	rc, err := h.eventService.OpenImage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	head, _ := br.Peek(512)

	w.Header().Set("Content-Type", http.DetectContentType(head))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, br); err != nil {
		h.logger.Warn("Event handler: image stream interrupted",
			"event_id", id,
			"error", err.Error())
	}
}

// authorizeEvent applies the policy for op on event id. When the policy
// checks the organizer, the event is loaded first; found is false when it
// does not exist.
func (h *Event) authorizeEvent(r *http.Request, op policy.Operation, id string) (found bool, err error) {
	principal := h.principal(r)

	if h.policy.Ownership(op) != policy.OwnershipOrganizer {
		return true, h.policy.Authorize(op, principal, "")
	}

	if h.policy.RequiresAuth(op) && principal == nil {
		return false, model.ErrTokenMissing
	}

	event, err := h.eventService.GetEvent(r.Context(), id)
	if err != nil {
		return false, err
	}
	if event == nil {
		return false, nil
	}

	if err := h.policy.Authorize(op, principal, event.Organizer.Email); err != nil {
		h.logger.Info("Event handler: operation denied",
			"operation", string(op),
			"event_id", id,
			"error", err.Error())
		return false, err
	}
	return true, nil
}

func (h *Event) principal(r *http.Request) *model.Principal {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		return nil
	}
	return &principal
}
