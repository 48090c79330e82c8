package capital

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/apperr"
	"github.com/casastock/casastock-backend/internal/modules/ledger"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new postgres capital repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) LatestCapital(ctx context.Context, owner uuid.UUID) (*ledger.CapitalSnapshot, error) {
	query := `SELECT id, owner_id, amount, created_at
		FROM capital
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	c := &ledger.CapitalSnapshot{}
	err := r.db.QueryRowContext(ctx, query, owner).Scan(&c.ID, &c.OwnerID, &c.Amount, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return c, nil
}
