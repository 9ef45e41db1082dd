/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, the middleware stack and the route table.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request, attached to handler log lines
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests from configured origins

ROUTES:
  /api/charges/*   Charge validation
  /healthz         Liveness probe

SECURITY NOTE:
  No authentication middleware. The API holds no state and only answers
  whether a payload is valid.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/chargectl/serve.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultCORSOrigins are allowed when no origins are configured.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	if len(corsOrigins) == 0 {
		corsOrigins = DefaultCORSOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api/charges", func(r chi.Router) {
		r.Post("/validate", h.ValidateCreate)
		r.Put("/validate", h.ValidateUpdate)
		r.Post("/slabs/validate", h.ValidateSlabs)
		r.Post("/timing-check", h.TimingCheck)
		r.Get("/options", h.Options)
	})

	return r
}
