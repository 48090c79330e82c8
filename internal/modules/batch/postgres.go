package batch

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateBatch(ctx context.Context, b *Batch) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO batches (id, owner_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at`, b.ID, b.OwnerID, b.Name).
		Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListBatches(ctx context.Context, owner uuid.UUID) ([]*Batch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, created_at
		FROM batches
		WHERE owner_id = $1
		ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*Batch
	for rows.Next() {
		b := &Batch{}
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// DeleteBatch detaches products first so the batch row can go without
// cascading into stock.
func (r *postgresRepo) DeleteBatch(ctx context.Context, owner, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET batch_id = NULL WHERE batch_id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM batches WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFoundf("batch not found")
	}

	return tx.Commit()
}
