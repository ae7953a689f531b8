/**
 * @description
 * This file implements HMAC verification of Stripe's webhook signature
 * header. The header carries a unix timestamp and one or more v1
 * signatures; the expected signature is HMAC-SHA256 of "<timestamp>.<body>"
 * under the endpoint's signing secret.
 */
package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// signatureTolerance bounds the accepted age of a signed payload, limiting
// replay of captured webhook deliveries.
const signatureTolerance = 5 * time.Minute

// verifyStripeSignature checks a Stripe-Signature header against the raw
// request body. It accepts the payload when any v1 signature matches and
// the signed timestamp is within tolerance of now.
func verifyStripeSignature(header string, body []byte, secret string, now time.Time) bool {
	var timestamp int64
	var candidates []string

	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "t":
			ts, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return false
			}
			timestamp = ts
		case "v1":
			candidates = append(candidates, parts[1])
		}
	}

	if timestamp == 0 || len(candidates) == 0 {
		return false
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	expected := mac.Sum(nil)

	for _, candidate := range candidates {
		provided, err := hex.DecodeString(candidate)
		if err != nil {
			continue
		}
		if hmac.Equal(provided, expected) {
			return true
		}
	}
	return false
}
