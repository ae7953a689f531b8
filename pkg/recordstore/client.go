/**
 * @description
 * This package provides a client for the developer datastore's REST
 * interface (Supabase PostgREST). It encapsulates authenticated partial
 * updates against the developers table, keyed by Stripe customer id.
 *
 * @notes
 * - The client mirrors the datastore's own error posture: an HTTP response
 *   of any status is a completed call (ok reports success), while only a
 *   transport-level failure is returned as an error. The reconciler relies
 *   on this to keep acknowledging webhooks for non-exceptional conditions.
 * - A default HTTP client with a timeout prevents requests from hanging
 *   indefinitely.
 */
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/swarmspace/billing-service/internal/domain"
)

// Client is a client for the developer record datastore.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a new datastore client.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// UpdateDeveloper applies a partial update to the developer record whose
// stripe_customer_id equals billingCustomerID. When the update carries an
// event timestamp, records that already saw a newer event are filtered out,
// so stale deliveries match nothing.
//
// The returned bool reports whether the datastore accepted the call; a
// filter that matches zero rows still succeeds. The error is non-nil only
// when the request could not be completed at all.
func (c *Client) UpdateDeveloper(ctx context.Context, billingCustomerID string, update domain.RecordUpdate) (bool, error) {
	endpoint := fmt.Sprintf(
		"%s/rest/v1/developers?stripe_customer_id=eq.%s",
		c.baseURL,
		url.QueryEscape(billingCustomerID),
	)
	if !update.EventTime.IsZero() {
		ts := update.EventTime.UTC().Format(time.RFC3339)
		endpoint += fmt.Sprintf(
			"&or=%s",
			url.QueryEscape(fmt.Sprintf("(last_event_at.is.null,last_event_at.lte.%s)", ts)),
		)
	}

	body, err := json.Marshal(update.Payload())
	if err != nil {
		return false, fmt.Errorf("failed to marshal record update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PATCH", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return false, fmt.Errorf("failed to create datastore request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request to datastore: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

// setHeaders adds the service-role credential and content-type headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
}
