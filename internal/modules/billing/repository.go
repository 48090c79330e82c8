package billing

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines subscription persistence.
type Repository interface {
	CreateSubscription(ctx context.Context, s *Subscription) error

	// LatestByOwner returns the owner's most recent subscription, or nil
	// when they never subscribed.
	LatestByOwner(ctx context.Context, owner uuid.UUID) (*Subscription, error)

	// SetStatusByGatewayID updates the status of the subscription with
	// the given gateway id and returns the updated row.
	SetStatusByGatewayID(ctx context.Context, gatewayID, status string) (*Subscription, error)
}
