package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fester-api/internal/lifecycle"
	"github.com/gdg-garage/fester-api/internal/store"
	log "github.com/sirupsen/logrus"
)

// Request validation failures are reported as 400 like every other bad input.
func init() {
	newError := huma.NewError
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}
		return newError(status, msg, errs...)
	}
}

// storeError translates a store failure into a problem response. Absence
// becomes notFound; anything else is an upstream failure and gets logged.
func storeError(logger *log.Logger, err error, notFound string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound(notFound)
	case errors.Is(err, store.ErrConflict):
		return huma.Error409Conflict("Record already exists")
	case errors.Is(err, lifecycle.ErrInvalidStatus):
		return huma.Error400BadRequest(err.Error())
	default:
		logger.WithError(err).Error("store call failed")
		return huma.Error502BadGateway("Data store request failed")
	}
}

// parseTime accepts RFC 3339 timestamps and plain dates.
func parseTime(field, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, huma.Error400BadRequest("Invalid " + field + ": expected RFC 3339 date-time or YYYY-MM-DD")
}
