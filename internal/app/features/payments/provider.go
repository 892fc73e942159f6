// internal/app/features/payments/provider.go

// Package payments receives payment provider webhooks and appends them
// to the append-only payment log. Marking a team paid is derived from
// the log by identity resolution; nothing here mutates team documents.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Payment statuses a provider may report.
const (
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// Event is one verified provider notification.
type Event struct {
	Email     string
	Reference string
	Amount    string
	Status    string
}

// Provider validates a raw webhook and extracts the payment event.
type Provider interface {
	Name() string
	HandleWebhook(ctx context.Context, body []byte, headers map[string]string) (Event, error)
}

// HMACProvider verifies webhooks signed with HMAC SHA-256 over the raw
// body, carried in the X-Signature header.
type HMACProvider struct {
	name   string
	secret string
}

// NewHMACProvider creates a provider for the given gateway name.
func NewHMACProvider(name, secret string) *HMACProvider {
	return &HMACProvider{name: name, secret: secret}
}

func (p *HMACProvider) Name() string { return p.name }

// webhookPayload is the gateway's notification body.
type webhookPayload struct {
	Email     string `json:"email"`
	Reference string `json:"reference"`
	Amount    string `json:"amount"`
	Status    string `json:"status"` // paid/cancelled
}

// HandleWebhook checks the signature and parses the payload.
func (p *HMACProvider) HandleWebhook(_ context.Context, body []byte, headers map[string]string) (Event, error) {
	sig := headers["x-signature"]
	expected := signBody(p.secret, body)
	if sig == "" || !hmac.Equal([]byte(sig), []byte(expected)) {
		return Event{}, fmt.Errorf("invalid signature")
	}

	var pl webhookPayload
	if err := json.Unmarshal(body, &pl); err != nil {
		return Event{}, fmt.Errorf("decode webhook payload: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(pl.Email))
	if email == "" {
		return Event{}, fmt.Errorf("webhook payload missing email")
	}
	if pl.Reference == "" {
		return Event{}, fmt.Errorf("webhook payload missing reference")
	}

	status := strings.TrimSpace(pl.Status)
	if status == "" {
		status = StatusPaid
	}
	if status != StatusPaid && status != StatusCancelled {
		return Event{}, fmt.Errorf("unknown payment status %q", status)
	}

	return Event{
		Email:     email,
		Reference: pl.Reference,
		Amount:    pl.Amount,
		Status:    status,
	}, nil
}

// signBody computes the hex HMAC SHA-256 signature of body.
func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
