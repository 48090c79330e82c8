package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines order read storage. Order creation goes through the
// ledger engine so stock and capital move in the same unit.
type Repository interface {
	// ListOrders returns the owner's orders with their lines, newest first.
	ListOrders(ctx context.Context, owner uuid.UUID) ([]*Order, error)

	// GetOrder returns one order with its lines.
	GetOrder(ctx context.Context, owner, id uuid.UUID) (*Order, error)
}
