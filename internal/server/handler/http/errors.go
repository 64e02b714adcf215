package http

import (
	"errors"
	"net/http"

	"github.com/atinyakov/feather/internal/models"
	"github.com/atinyakov/feather/internal/service"
)

// mapError converts a registration error to a status, a message and
// field attributed error strings.
func mapError(err error) (int, string, []string) {
	var uv *models.UniqueViolationError

	switch {
	case errors.Is(err, service.ErrMalformedInput):
		return http.StatusBadRequest, "invalid request", []string{"body: registration data is missing"}
	case errors.As(err, &uv):
		return http.StatusConflict, "registration failed", []string{uv.Field + ": already exists"}
	case errors.Is(err, models.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "service unavailable", []string{"storage: temporarily unavailable, please retry later"}
	default:
		return http.StatusInternalServerError, "internal error", []string{"server: internal error"}
	}
}
