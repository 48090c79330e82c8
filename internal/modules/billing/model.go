package billing

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses. A subscription starts pending at checkout and
// moves to active once the gateway confirms payment.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Subscription is one billing period agreement with the payment gateway.
type Subscription struct {
	ID                    uuid.UUID `json:"id"`
	OwnerID               uuid.UUID `json:"owner_id"`
	GatewaySubscriptionID string    `json:"gateway_subscription_id"`
	PlanID                string    `json:"plan_id"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Checkout is returned to the client to launch the gateway's payment
// widget.
type Checkout struct {
	SubscriptionID string `json:"subscription_id"`
	KeyID          string `json:"key_id"`
	ShortURL       string `json:"short_url,omitempty"`
}

// VerifyRequest is the payload the client posts after the gateway
// widget reports a successful payment.
type VerifyRequest struct {
	SubscriptionID string `json:"subscription_id"`
	PaymentID      string `json:"payment_id"`
	Signature      string `json:"signature"`
}
