package billing

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/apperr"
)

// Service defines subscription business logic.
type Service interface {
	// Subscribe creates a pending subscription at the gateway and
	// returns the checkout details for the payment widget.
	Subscribe(ctx context.Context, owner uuid.UUID) (*Checkout, error)

	// Verify confirms a checkout the widget reported as paid and
	// activates the subscription.
	Verify(ctx context.Context, owner uuid.UUID, req VerifyRequest) (*Subscription, error)

	// HandleWebhook processes a gateway event delivery.
	HandleWebhook(ctx context.Context, body []byte, signature string) error

	// Current returns the owner's most recent subscription, nil if none.
	Current(ctx context.Context, owner uuid.UUID) (*Subscription, error)
}

type service struct {
	repo    Repository
	gateway Gateway
	keyID   string
	planID  string
}

// NewService creates a new billing service.
func NewService(repo Repository, gateway Gateway, keyID, planID string) Service {
	return &service{repo: repo, gateway: gateway, keyID: keyID, planID: planID}
}

func (s *service) Subscribe(ctx context.Context, owner uuid.UUID) (*Checkout, error) {
	current, err := s.repo.LatestByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Status == StatusActive {
		return nil, apperr.Conflictf("subscription already active")
	}

	gw, err := s.gateway.CreateSubscription(ctx, s.planID)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		ID:                    uuid.New(),
		OwnerID:               owner,
		GatewaySubscriptionID: gw.ID,
		PlanID:                s.planID,
		Status:                StatusPending,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	return &Checkout{
		SubscriptionID: gw.ID,
		KeyID:          s.keyID,
		ShortURL:       gw.ShortURL,
	}, nil
}

func (s *service) Verify(ctx context.Context, owner uuid.UUID, req VerifyRequest) (*Subscription, error) {
	if req.SubscriptionID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, apperr.Validationf("subscription_id, payment_id and signature are required")
	}
	if !s.gateway.VerifyCheckoutSignature(req.SubscriptionID, req.PaymentID, req.Signature) {
		return nil, apperr.Authf("payment signature mismatch")
	}

	current, err := s.repo.LatestByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if current == nil || current.GatewaySubscriptionID != req.SubscriptionID {
		return nil, apperr.NotFoundf("subscription not found")
	}
	return s.repo.SetStatusByGatewayID(ctx, req.SubscriptionID, StatusActive)
}

// webhookEvent mirrors the slice of the gateway's event payload we
// care about.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Subscription struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"subscription"`
		Payment struct {
			Entity struct {
				SubscriptionID string `json:"subscription_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (ev *webhookEvent) subscriptionID() string {
	if id := ev.Payload.Subscription.Entity.ID; id != "" {
		return id
	}
	return ev.Payload.Payment.Entity.SubscriptionID
}

func (s *service) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.gateway.VerifyWebhookSignature(body, signature) {
		return apperr.Authf("webhook signature mismatch")
	}

	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return apperr.Validationf("malformed webhook payload")
	}
	subID := ev.subscriptionID()
	if subID == "" {
		// Event types without a subscription entity are not ours.
		return nil
	}

	var status string
	switch ev.Event {
	case "subscription.activated", "subscription.charged", "payment.captured":
		status = StatusActive
	case "subscription.cancelled", "subscription.completed", "subscription.halted":
		status = StatusCancelled
	default:
		return nil
	}

	_, err := s.repo.SetStatusByGatewayID(ctx, subID, status)
	return err
}

func (s *service) Current(ctx context.Context, owner uuid.UUID) (*Subscription, error) {
	return s.repo.LatestByOwner(ctx, owner)
}
