/**
 * @description
 * This package provides the billing-provider client used to look up and
 * create Stripe customers and to open hosted subscription checkout
 * sessions. It wraps the official stripe-go SDK behind the small interface
 * the checkout service consumes.
 *
 * @notes
 * - Customers and subscriptions created here are tagged with
 *   metadata source=swarmspace so provider-side analytics can attribute
 *   them to this application.
 * - Stripe API errors are unwrapped to their human-readable message, which
 *   is what the checkout endpoint surfaces to the caller.
 */
package stripeclient

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/swarmspace/billing-service/internal/domain"
)

// sourceTag marks customers and subscriptions as originating from swarmspace.
const sourceTag = "swarmspace"

// Client is a client for the Stripe billing API.
type Client struct {
	api     *client.API
	priceID string
	appURL  string
}

// NewClient creates a new Stripe client for the given secret key, verified
// plan price id, and application base URL (used for redirect targets).
func NewClient(secretKey, priceID, appURL string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{
		api:     api,
		priceID: priceID,
		appURL:  appURL,
	}
}

// FindCustomerByEmail returns the id of an existing customer with the given
// email, or an empty string when none exists.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := c.api.Customers.List(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", providerError(err, "customer lookup")
	}
	return "", nil
}

// CreateCustomer creates a new Stripe customer and returns its id.
func (c *Client) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	params.AddMetadata("source", sourceTag)

	customer, err := c.api.Customers.New(params)
	if err != nil {
		return "", providerError(err, "customer creation")
	}
	return customer.ID, nil
}

// CreateCheckoutSession opens a subscription-mode checkout session for the
// verified plan and returns its redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, customerID string) (*domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(c.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:          stripe.String(c.appURL + "/dashboard.html?session=success"),
		CancelURL:           stripe.String(c.appURL + "/dashboard.html?session=canceled"),
		AllowPromotionCodes: stripe.Bool(true),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"source": sourceTag},
		},
	}
	params.Context = ctx

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, providerError(err, "checkout session creation")
	}
	return &domain.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

// providerError reduces a Stripe SDK error to the provider's own message
// text, which is safe to show to an interactive caller.
func providerError(err error, op string) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return errors.New(stripeErr.Msg)
	}
	return fmt.Errorf("stripe %s failed: %w", op, err)
}
