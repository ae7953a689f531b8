/**
 * @description
 * This file contains the business logic for initiating a hosted checkout.
 * The service resolves a Stripe customer for the developer (reusing an
 * existing one where possible) and requests a subscription checkout
 * session from the billing provider.
 */
package app

import (
	"context"
	"log"

	"github.com/swarmspace/billing-service/internal/domain"
)

// BillingProvider defines the provider operations the checkout service needs.
type BillingProvider interface {
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
	CreateCustomer(ctx context.Context, email, name string) (string, error)
	CreateCheckoutSession(ctx context.Context, customerID string) (*domain.CheckoutSession, error)
}

// CheckoutService initiates hosted subscription checkouts.
type CheckoutService struct {
	provider BillingProvider
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(provider BillingProvider) *CheckoutService {
	return &CheckoutService{provider: provider}
}

// StartCheckout ensures a Stripe customer exists for the request and creates
// a checkout session for the verified plan.
//
// When the caller already knows its customer id, it is trusted as-is and no
// customer calls are made. Otherwise the provider is searched by email
// before creating, so repeated checkouts for the same developer reuse one
// customer instead of minting duplicates.
//
// This method deliberately does not write the developer billing record: the
// checkout may be abandoned, so persistence happens only when the
// corresponding lifecycle event arrives.
func (s *CheckoutService) StartCheckout(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutResult, error) {
	customerID := req.CustomerID

	if customerID == "" {
		existing, err := s.provider.FindCustomerByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != "" {
			log.Printf("Reusing existing Stripe customer %s for %s", existing, req.Email)
			customerID = existing
		} else {
			name := req.DeveloperName
			if name == "" {
				name = req.Email
			}
			created, err := s.provider.CreateCustomer(ctx, req.Email, name)
			if err != nil {
				return nil, err
			}
			log.Printf("Created Stripe customer %s for %s", created, req.Email)
			customerID = created
		}
	}

	session, err := s.provider.CreateCheckoutSession(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &domain.CheckoutResult{
		URL:        session.URL,
		CustomerID: customerID,
	}, nil
}
