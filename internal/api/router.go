/**
 * @description
 * This file sets up the HTTP router for the billing-service using the
 * go-chi/chi router. It applies middleware for logging, panic recovery,
 * request timeouts, and CORS (the dashboard calls these endpoints
 * cross-origin), and maps the routes to their handlers.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers the billing routes.
func NewRouter(checkout *CheckoutHandler, webhook *WebhookHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Stripe-Signature"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Billing service is healthy"))
	})

	// Both endpoints are POST-only; chi answers other verbs with 405.
	r.Post("/api/create-checkout", checkout.ServeHTTP)
	r.Post("/api/stripe-webhook", webhook.ServeHTTP)

	return r
}
