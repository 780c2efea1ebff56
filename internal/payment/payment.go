package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// ErrNotConfigured is returned when the gateway credentials are missing.
var ErrNotConfigured = errors.New("payment gateway not configured")

// ProviderOrder is the gateway-side transaction created at checkout.
type ProviderOrder struct {
	ID       string
	Amount   int64 // smallest currency unit
	Currency string
}

// Gateway creates provider transactions and verifies their callbacks.
type Gateway interface {
	CreateOrder(amount int64, currency, receipt string) (*ProviderOrder, error)
	VerifySignature(providerOrderID, paymentID, signature string) bool
	KeyID() string
}

// RazorpayGateway talks to Razorpay's orders API.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	client    *razorpay.Client
}

// NewRazorpayGateway builds a gateway. The client is only created when both
// credentials are present; CreateOrder fails with ErrNotConfigured otherwise.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	g := &RazorpayGateway{keyID: keyID, keySecret: keySecret}
	if keyID != "" && keySecret != "" {
		g.client = razorpay.NewClient(keyID, keySecret)
	}
	return g
}

func (g *RazorpayGateway) KeyID() string { return g.keyID }

// CreateOrder creates a provider order for amount (in paise for INR).
func (g *RazorpayGateway) CreateOrder(amount int64, currency, receipt string) (*ProviderOrder, error) {
	if g.client == nil {
		return nil, ErrNotConfigured
	}

	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: response has no id")
	}
	order := &ProviderOrder{ID: id, Amount: amount, Currency: currency}
	if v, ok := body["amount"].(float64); ok {
		order.Amount = int64(v)
	}
	if v, ok := body["currency"].(string); ok && v != "" {
		order.Currency = v
	}
	return order, nil
}

// VerifySignature checks the callback signature against the shared secret.
func (g *RazorpayGateway) VerifySignature(providerOrderID, paymentID, signature string) bool {
	return VerifySignature(g.keySecret, providerOrderID, paymentID, signature)
}

// Sign returns hex(HMAC-SHA256(secret, providerOrderID + "|" + paymentID)).
func Sign(secret, providerOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(providerOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature equals the expected hex digest exactly.
func VerifySignature(secret, providerOrderID, paymentID, signature string) bool {
	expected := Sign(secret, providerOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
