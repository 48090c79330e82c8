package billing

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/casastock/casastock-backend/internal/apperr"
)

// GatewaySubscription is the gateway's record of a created subscription.
type GatewaySubscription struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

// Gateway abstracts the payment provider.
type Gateway interface {
	CreateSubscription(ctx context.Context, planID string) (*GatewaySubscription, error)

	// VerifyCheckoutSignature checks the signature the payment widget
	// hands to the client after checkout.
	VerifyCheckoutSignature(subscriptionID, paymentID, signature string) bool

	// VerifyWebhookSignature checks the signature header of a webhook
	// delivery against the raw request body.
	VerifyWebhookSignature(body []byte, signature string) bool
}

const razorpayBaseURL = "https://api.razorpay.com"

// RazorpayGateway talks to the Razorpay REST API with basic auth.
type RazorpayGateway struct {
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
	client        *http.Client
}

// NewRazorpayGateway creates a Razorpay-backed gateway.
func NewRazorpayGateway(keyID, keySecret, webhookSecret string) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		baseURL:       razorpayBaseURL,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *RazorpayGateway) CreateSubscription(ctx context.Context, planID string) (*GatewaySubscription, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"plan_id":         planID,
		"total_count":     12,
		"customer_notify": 1,
	})
	if err != nil {
		return nil, apperr.Store(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/subscriptions", bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.Store(err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, apperr.Store(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Store(fmt.Errorf("razorpay: create subscription: status %d: %s", resp.StatusCode, body))
	}

	sub := &GatewaySubscription{}
	if err := json.Unmarshal(body, sub); err != nil {
		return nil, apperr.Store(err)
	}
	return sub, nil
}

func (g *RazorpayGateway) VerifyCheckoutSignature(subscriptionID, paymentID, signature string) bool {
	return verifyHMAC(g.keySecret, []byte(subscriptionID+"|"+paymentID), signature)
}

func (g *RazorpayGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return verifyHMAC(g.webhookSecret, body, signature)
}

func verifyHMAC(secret string, message []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
