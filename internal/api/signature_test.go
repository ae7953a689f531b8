package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

func signPayload(secret string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyStripeSignature(t *testing.T) {
	secret := "whsec_test_secret"
	body := []byte(`{"type":"customer.subscription.updated"}`)
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name   string
		header string
		body   []byte
		want   bool
	}{
		{
			name:   "valid signature",
			header: signPayload(secret, now.Unix(), body),
			body:   body,
			want:   true,
		},
		{
			name:   "tampered body",
			header: signPayload(secret, now.Unix(), body),
			body:   []byte(`{"type":"customer.subscription.deleted"}`),
			want:   false,
		},
		{
			name:   "wrong secret",
			header: signPayload("whsec_other", now.Unix(), body),
			body:   body,
			want:   false,
		},
		{
			name:   "stale timestamp",
			header: signPayload(secret, now.Add(-10*time.Minute).Unix(), body),
			body:   body,
			want:   false,
		},
		{
			name:   "future timestamp beyond tolerance",
			header: signPayload(secret, now.Add(10*time.Minute).Unix(), body),
			body:   body,
			want:   false,
		},
		{
			name:   "missing v1 signature",
			header: fmt.Sprintf("t=%d", now.Unix()),
			body:   body,
			want:   false,
		},
		{
			name:   "missing timestamp",
			header: "v1=deadbeef",
			body:   body,
			want:   false,
		},
		{
			name:   "garbage header",
			header: "not-a-signature",
			body:   body,
			want:   false,
		},
		{
			name:   "valid signature among multiple candidates",
			header: signPayload(secret, now.Unix(), body) + ",v1=deadbeef",
			body:   body,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := verifyStripeSignature(tt.header, tt.body, secret, now)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
