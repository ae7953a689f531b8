/**
 * @description
 * This file defines the Go structs that model incoming lifecycle event
 * payloads from Stripe. Only the fields the reconciler reads are modeled;
 * everything else in the payload is ignored.
 *
 * @notes
 * - The `data.object` payload is kept as raw JSON and decoded per event
 *   type, since its shape depends on the event.
 * - Stripe delivers at-least-once and possibly out of order, so the event
 *   `created` timestamp is carried through to the record update.
 */
package domain

import "encoding/json"

// Lifecycle event types the reconciler acts on. Anything else is a no-op.
const (
	EventCheckoutCompleted  = "checkout.session.completed"
	EventSubscriptionUpdate = "customer.subscription.updated"
	EventSubscriptionDelete = "customer.subscription.deleted"
	EventPaymentFailed      = "invoice.payment_failed"
)

// Event is the top-level structure of a Stripe webhook payload.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Created int64     `json:"created"`
	Data    EventData `json:"data"`
}

// EventData wraps the event-specific payload object.
type EventData struct {
	Object json.RawMessage `json:"object"`
}

// SessionObject is the `data.object` of a checkout.session.completed event.
type SessionObject struct {
	Mode         string `json:"mode"`
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
}

// SubscriptionObject is the `data.object` of customer.subscription.* events.
type SubscriptionObject struct {
	Customer string `json:"customer"`
	Status   string `json:"status"`
}

// InvoiceObject is the `data.object` of invoice.* events.
type InvoiceObject struct {
	Customer string `json:"customer"`
}
