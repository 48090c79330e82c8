package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository reads sales figures for reporting.
type Repository interface {
	// OrdersSince returns every order of the owner created at or after
	// the given instant, with its lines and buying prices.
	OrdersSince(ctx context.Context, owner uuid.UUID, since time.Time) ([]*OrderSales, error)
}
