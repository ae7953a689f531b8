/**
 * @description
 * This file contains the HTTP handlers for the billing-service: the
 * checkout endpoint called by the dashboard and the webhook endpoint
 * called by Stripe.
 *
 * Key features:
 * - Checkout failures are surfaced to the interactive caller with the
 *   provider's message, while webhook processing acknowledges everything
 *   short of a genuine datastore failure, so Stripe stops redelivering
 *   events that were handled (or deliberately ignored).
 * - Webhook authenticity is enforced with HMAC signature verification
 *   against the raw body before the payload is parsed.
 */
package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/swarmspace/billing-service/internal/app"
	"github.com/swarmspace/billing-service/internal/domain"
)

// CheckoutHandler serves checkout session creation requests.
type CheckoutHandler struct {
	service    *app.CheckoutService
	configured bool
}

// NewCheckoutHandler creates a checkout handler. configured reports whether
// the Stripe credentials and price id are present; without them every
// request is rejected as a server misconfiguration.
func NewCheckoutHandler(service *app.CheckoutService, configured bool) *CheckoutHandler {
	return &CheckoutHandler{service: service, configured: configured}
}

// ServeHTTP implements the http.Handler interface.
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.configured {
		respondWithError(w, http.StatusInternalServerError, "Stripe not configured")
		return
	}

	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.StartCheckout(r.Context(), req)
	if err != nil {
		log.Printf("Failed to create checkout session for %s: %v", req.Email, err)
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// WebhookHandler processes incoming lifecycle events from Stripe.
type WebhookHandler struct {
	reconciler *app.Reconciler
	secret     string
	now        func() time.Time
}

// NewWebhookHandler creates a new handler for the webhook endpoint.
func NewWebhookHandler(reconciler *app.Reconciler, secret string) *WebhookHandler {
	return &WebhookHandler{
		reconciler: reconciler,
		secret:     secret,
		now:        time.Now,
	}
}

// ServeHTTP implements the http.Handler interface.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("[%s] Error reading webhook body: %v", requestID, err)
		respondWithError(w, http.StatusBadRequest, "Cannot read request body")
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if h.secret == "" || signature == "" {
		log.Printf("[%s] Webhook rejected: missing signing secret or signature header", requestID)
		respondWithError(w, http.StatusBadRequest, "Webhook secret not configured")
		return
	}
	if !verifyStripeSignature(signature, body, h.secret, h.now()) {
		log.Printf("[%s] Webhook rejected: invalid signature", requestID)
		respondWithError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	var event domain.Event
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("[%s] Error decoding webhook JSON: %v", requestID, err)
		respondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	log.Printf("[%s] Received webhook event %s (%s)", requestID, event.ID, event.Type)

	if err := h.reconciler.Apply(r.Context(), event); err != nil {
		log.Printf("[%s] Webhook processing failed: %v", requestID, err)
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes an {error} JSON body with the given status.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
