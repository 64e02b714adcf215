package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/feather/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the API and the static site.
//
// Routes:
//
//	GET, POST /                       → Hello
//	GET       /api/v1/get_questions   → questionHandler.Get
//	POST      /api/v1/register        → ValidateRegistration(checker) → registerHandler.Register
//	GET       /*                      → files under staticDir (when set)
//
// Middleware chain (applied in order):
//  1. RequestID                      — assigns or propagates X-Request-ID
//  2. WithRequestLogging(logger)     — logs incoming requests
//  3. Recoverer                      — turns handler panics into 500
func NewRouter(
	questionHandler *QuestionHandler,
	registerHandler *RegisterHandler,
	checker middleware.ChallengeChecker,
	staticDir string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)

	r.Get("/", Hello)
	r.Post("/", Hello)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/get_questions", questionHandler.Get)
		r.With(middleware.ValidateRegistration(checker)).
			Post("/register", registerHandler.Register)
	})

	if staticDir != "" {
		r.Get("/*", http.FileServer(http.Dir(staticDir)).ServeHTTP)
	}

	return r
}
