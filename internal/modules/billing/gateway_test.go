package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyCheckoutSignature(t *testing.T) {
	g := NewRazorpayGateway("key", "secret", "whsecret")

	sig := sign("secret", "sub_123|pay_456")
	assert.True(t, g.VerifyCheckoutSignature("sub_123", "pay_456", sig))
	assert.False(t, g.VerifyCheckoutSignature("sub_123", "pay_456", "bogus"))
	assert.False(t, g.VerifyCheckoutSignature("sub_999", "pay_456", sig))
}

func TestVerifyWebhookSignature(t *testing.T) {
	g := NewRazorpayGateway("key", "secret", "whsecret")

	body := []byte(`{"event":"subscription.charged"}`)
	assert.True(t, g.VerifyWebhookSignature(body, sign("whsecret", string(body))))
	// Signed with the checkout secret instead of the webhook secret.
	assert.False(t, g.VerifyWebhookSignature(body, sign("secret", string(body))))
	assert.False(t, g.VerifyWebhookSignature([]byte(`{"event":"tampered"}`), sign("whsecret", string(body))))
}

func TestCreateSubscription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/subscriptions", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "plan_basic", payload["plan_id"])

		json.NewEncoder(w).Encode(map[string]string{
			"id":        "sub_123",
			"short_url": "https://rzp.io/i/abc",
			"status":    "created",
		})
	}))
	defer srv.Close()

	g := &RazorpayGateway{
		keyID:     "key",
		keySecret: "secret",
		baseURL:   srv.URL,
		client:    &http.Client{Timeout: time.Second},
	}

	sub, err := g.CreateSubscription(context.Background(), "plan_basic")
	require.NoError(t, err)
	assert.Equal(t, "sub_123", sub.ID)
	assert.Equal(t, "https://rzp.io/i/abc", sub.ShortURL)
}

func TestCreateSubscriptionGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"bad plan"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	g := &RazorpayGateway{
		keyID:     "key",
		keySecret: "secret",
		baseURL:   srv.URL,
		client:    &http.Client{Timeout: time.Second},
	}

	_, err := g.CreateSubscription(context.Background(), "plan_bogus")
	require.Error(t, err)
}
