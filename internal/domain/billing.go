/**
 * @description
 * This file defines the core domain models for the billing-service.
 * It includes the plan entitlement enums, the partial update applied to a
 * developer's billing record, and the checkout request/result DTOs.
 */
package domain

import "time"

// Plan is the coarse entitlement the rest of the application reads.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanVerified Plan = "verified"
)

// Well-known plan statuses. Stripe-defined statuses outside this set are
// passed through to plan_status verbatim.
const (
	PlanStatusActive   = "active"
	PlanStatusPastDue  = "past_due"
	PlanStatusCanceled = "canceled"
)

// RecordUpdate is the partial update applied to a developer billing record
// in the datastore. Zero-valued fields are left untouched; clearing the
// subscription id needs an explicit flag because the datastore requires a
// JSON null to unset the column.
type RecordUpdate struct {
	BillingCustomerID string
	SubscriptionID    string
	ClearSubscription bool
	Plan              Plan
	PlanStatus        string
	EventTime         time.Time // provider event timestamp, guards against stale replays
}

// Payload renders the update as the JSON body for a datastore PATCH.
func (u RecordUpdate) Payload() map[string]interface{} {
	p := map[string]interface{}{}
	if u.BillingCustomerID != "" {
		p["stripe_customer_id"] = u.BillingCustomerID
	}
	if u.SubscriptionID != "" {
		p["stripe_subscription_id"] = u.SubscriptionID
	}
	if u.ClearSubscription {
		p["stripe_subscription_id"] = nil
	}
	if u.Plan != "" {
		p["plan"] = string(u.Plan)
	}
	if u.PlanStatus != "" {
		p["plan_status"] = u.PlanStatus
	}
	if !u.EventTime.IsZero() {
		p["last_event_at"] = u.EventTime.UTC().Format(time.RFC3339)
	}
	return p
}

// CheckoutRequest is the body of a create-checkout call. CustomerID is
// optional; when absent the service resolves or mints a Stripe customer.
type CheckoutRequest struct {
	CustomerID    string `json:"customerId"`
	Email         string `json:"email"`
	DeveloperName string `json:"developerName"`
}

// CheckoutResult is returned to the caller so it can redirect the user and
// persist the resolved customer id locally if desired.
type CheckoutResult struct {
	URL        string `json:"url"`
	CustomerID string `json:"customerId"`
}

// CheckoutSession is the subset of a Stripe checkout session the service
// cares about.
type CheckoutSession struct {
	ID  string
	URL string
}
