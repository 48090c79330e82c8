package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/modules/ledger"
)

// Repository defines expense read storage. All mutations go through the
// ledger engine so the capital delta travels with them.
type Repository interface {
	ListExpenses(ctx context.Context, owner uuid.UUID) ([]*ledger.Expense, error)
}
