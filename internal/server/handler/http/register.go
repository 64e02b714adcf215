package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/feather/internal/envelope"
	"github.com/atinyakov/feather/internal/middleware"
	"github.com/atinyakov/feather/internal/models"
	"github.com/atinyakov/feather/internal/service"
)

// RegistrationService defines the registration operation
// required by the HTTP handlers.
type RegistrationService interface {
	// Register persists a new user built from in.
	Register(ctx context.Context, in *models.RegistrationInput) (*models.User, error)
}

// RegisterHandler handles user registration.
type RegisterHandler struct {
	// Service performs the underlying registration.
	Service RegistrationService
	// Log receives registration failures.
	Log *zap.Logger
}

// Register handles POST /api/v1/register.
// It expects middleware.ValidateRegistration to have attached the
// validated input to the request context.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, ok := middleware.RegistrationFromContext(ctx)
	if !ok {
		h.fail(w, r, service.ErrMalformedInput)
		return
	}

	user, err := h.Service.Register(ctx, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	envelope.Write(w, envelope.OK("registration successful", models.NewUserResponse(user)))
}

func (h *RegisterHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message, errs := mapError(err)

	if h.Log != nil {
		log := h.Log.Warn
		if status >= http.StatusInternalServerError {
			log = h.Log.Error
		}
		log("registration failed",
			zap.Int("status", status),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
	}

	envelope.Write(w, envelope.Fail[models.UserResponse](status, message, errs...))
}
