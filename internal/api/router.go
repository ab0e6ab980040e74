/**
 * @description
 * This file sets up the HTTP router for the card-webhook-service using the
 * `chi` routing library. It defines the webhook routes for each external
 * party and applies the standard middleware stack.
 *
 * @dependencies
 * - github.com/go-chi/chi/v5: The routing library.
 * - The service's internal packages for handlers.
 */
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new HTTP router.
func NewRouter(handler *WebhookHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Liveness endpoint. Reports the service identity only; it never probes
	// the downstream cards service.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "card-webhook-service",
		})
	})

	r.Route("/webhook", func(r chi.Router) {
		r.Post("/bank/new", handler.BankNewCard)
		r.Post("/bank/update", handler.BankCardUpdate)
		r.Post("/card-manufacturer", handler.ManufacturerUpdate)
		r.Post("/logistics", handler.LogisticsUpdate)
	})

	return r
}
