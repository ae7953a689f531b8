/**
 * @description
 * This file contains the event reconciliation logic: the mapping from a
 * Stripe lifecycle event to the partial update applied to the developer's
 * billing record in the datastore.
 *
 * Key properties:
 * - Every transition is idempotent; replaying an event reproduces the same
 *   record state, which delivery-at-least-once requires.
 * - Unrecognized event types are acknowledged without touching the store.
 * - An update that matches no record is a silent no-op, not an error. Only
 *   a transport-level failure talking to the store propagates.
 */
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/swarmspace/billing-service/internal/domain"
)

// RecordStore defines the partial-update operation the reconciler needs.
type RecordStore interface {
	UpdateDeveloper(ctx context.Context, billingCustomerID string, update domain.RecordUpdate) (bool, error)
}

// Reconciler applies Stripe lifecycle events to developer billing records.
type Reconciler struct {
	store RecordStore
}

// NewReconciler creates a new event reconciler.
func NewReconciler(store RecordStore) *Reconciler {
	return &Reconciler{store: store}
}

// Apply classifies the event and applies the corresponding state transition.
func (r *Reconciler) Apply(ctx context.Context, event domain.Event) error {
	switch event.Type {
	case domain.EventCheckoutCompleted:
		var session domain.SessionObject
		if err := json.Unmarshal(event.Data.Object, &session); err != nil {
			log.Printf("Skipping malformed %s payload: %v", event.Type, err)
			return nil
		}
		if session.Mode != "subscription" {
			log.Printf("Ignoring %s with mode %q", event.Type, session.Mode)
			return nil
		}
		return r.update(ctx, event, session.Customer, domain.RecordUpdate{
			BillingCustomerID: session.Customer,
			SubscriptionID:    session.Subscription,
			Plan:              domain.PlanVerified,
			PlanStatus:        domain.PlanStatusActive,
		})

	case domain.EventSubscriptionUpdate:
		var sub domain.SubscriptionObject
		if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
			log.Printf("Skipping malformed %s payload: %v", event.Type, err)
			return nil
		}
		plan := domain.PlanFree
		if sub.Status == domain.PlanStatusActive {
			plan = domain.PlanVerified
		}
		return r.update(ctx, event, sub.Customer, domain.RecordUpdate{
			Plan:       plan,
			PlanStatus: sub.Status,
		})

	case domain.EventSubscriptionDelete:
		var sub domain.SubscriptionObject
		if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
			log.Printf("Skipping malformed %s payload: %v", event.Type, err)
			return nil
		}
		return r.update(ctx, event, sub.Customer, domain.RecordUpdate{
			Plan:              domain.PlanFree,
			PlanStatus:        domain.PlanStatusCanceled,
			ClearSubscription: true,
		})

	case domain.EventPaymentFailed:
		var invoice domain.InvoiceObject
		if err := json.Unmarshal(event.Data.Object, &invoice); err != nil {
			log.Printf("Skipping malformed %s payload: %v", event.Type, err)
			return nil
		}
		return r.update(ctx, event, invoice.Customer, domain.RecordUpdate{
			PlanStatus: domain.PlanStatusPastDue,
		})

	default:
		// Forward-compatible: unknown event types are acknowledged untouched.
		return nil
	}
}

// update stamps the event timestamp onto the update and sends it to the
// record store. The timestamp filter makes the update a no-op when a newer
// event has already been applied.
func (r *Reconciler) update(ctx context.Context, event domain.Event, customerID string, update domain.RecordUpdate) error {
	if customerID == "" {
		log.Printf("Ignoring %s without a customer id", event.Type)
		return nil
	}
	if event.Created > 0 {
		update.EventTime = time.Unix(event.Created, 0)
	}

	ok, err := r.store.UpdateDeveloper(ctx, customerID, update)
	if err != nil {
		return fmt.Errorf("failed to update developer record for customer %s: %w", customerID, err)
	}
	if !ok {
		// Record missing or already ahead of this event; Stripe still needs
		// its ack, so this is not an error.
		log.Printf("Developer record update for customer %s matched nothing (%s)", customerID, event.Type)
	}
	return nil
}
