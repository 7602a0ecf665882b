// Package http is the inbound HTTP adapter: the chi router, its handlers
// and middleware, and the server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/numeral-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/numeral-service/internal/adapters/http/handlers"
)

// NewRouter registers the health probes and the numeral API behind the
// given middleware, outermost first. Unmatched paths and methods get
// problem responses like any other error.
func NewRouter(
	numerals *handlers.NumeralHandler,
	health *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(statusHandler(http.StatusNotFound))
	r.MethodNotAllowed(statusHandler(http.StatusMethodNotAllowed))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", health.Liveness)
		r.Get("/ready", health.Readiness)
	})

	r.Route("/api/v1/numerals", func(r chi.Router) {
		r.Post("/batch", numerals.ConvertBatch)
		r.Get("/{value}", numerals.Convert)
	})

	return r
}

func statusHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto.WriteStatusResponse(w, r, status)
	}
}
