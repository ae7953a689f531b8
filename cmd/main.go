/**
 * @description
 * This is the main entry point for the billing-service. It synchronizes
 * Stripe's subscription lifecycle into the developer records: one endpoint
 * opens hosted checkout sessions, the other receives Stripe webhooks and
 * reconciles them into each developer's stored plan.
 *
 * Key features:
 * - Loads application configuration from environment variables.
 * - Wires the Stripe client and the developer datastore client into the
 *   checkout and reconciliation services.
 * - Sets up an HTTP router (`chi`) and implements graceful shutdown.
 *
 * @dependencies
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for building Go HTTP services.
 * - github.com/joho/godotenv: For loading .env files during local development.
 * - The service's internal packages for config, API handling, and the collaborator clients.
 */
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/swarmspace/billing-service/internal/api"
	"github.com/swarmspace/billing-service/internal/app"
	"github.com/swarmspace/billing-service/internal/config"
	"github.com/swarmspace/billing-service/pkg/recordstore"
	"github.com/swarmspace/billing-service/pkg/stripeclient"
)

func main() {
	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load application configuration.
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if !cfg.StripeConfigured() {
		log.Println("Warning: Stripe credentials not configured; checkout requests will be rejected")
	}
	if cfg.StripeWebhookSecret == "" {
		log.Println("Warning: STRIPE_WEBHOOK_SECRET not set; webhooks will be rejected")
	}

	// Collaborator clients.
	provider := stripeclient.NewClient(cfg.StripeSecretKey, cfg.StripeVerifiedPriceID, cfg.AppURL)
	store := recordstore.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)

	// Services and handlers.
	checkoutService := app.NewCheckoutService(provider)
	reconciler := app.NewReconciler(store)

	checkoutHandler := api.NewCheckoutHandler(checkoutService, cfg.StripeConfigured())
	webhookHandler := api.NewWebhookHandler(reconciler, cfg.StripeWebhookSecret)

	router := api.NewRouter(checkoutHandler, webhookHandler)

	// Start the HTTP server.
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %s\n", err)
		}
	}()

	// Graceful shutdown logic.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
