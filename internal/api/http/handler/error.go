package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/eventopia-server/internal/api/http/response"
	"github.com/dtroode/eventopia-server/internal/model"
	"github.com/dtroode/eventopia-server/internal/service"
)

const (
	msgUnauthorized   = "unauthorized access"
	msgForbidden      = "forbidden access"
	msgInvalidID      = "invalid id"
	msgImagesDisabled = "event images are disabled"
	msgInternal       = "internal server error"
)

func writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		response.Error(w, apiErr.Status, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrInvalidID):
		response.Error(w, http.StatusBadRequest, msgInvalidID)
	case errors.Is(err, model.ErrForbidden):
		response.Error(w, http.StatusForbidden, msgForbidden)
	case errors.Is(err, model.ErrTokenMissing),
		errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrTokenExpired):
		response.Error(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, service.ErrImagesDisabled):
		response.Error(w, http.StatusNotImplemented, msgImagesDisabled)
	default:
		response.Error(w, http.StatusInternalServerError, msgInternal)
	}
}
