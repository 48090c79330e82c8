package capital

import (
	"context"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/modules/ledger"
)

// Repository provides read access to capital snapshots.
type Repository interface {
	// LatestCapital returns the newest snapshot for the owner, or nil when
	// no capital has been recorded yet.
	LatestCapital(ctx context.Context, owner uuid.UUID) (*ledger.CapitalSnapshot, error)
}
