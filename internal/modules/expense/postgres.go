package expense

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/modules/ledger"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListExpenses(ctx context.Context, owner uuid.UUID) ([]*ledger.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, expense_type, amount, created_at
		FROM expenses
		WHERE owner_id = $1
		ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*ledger.Expense
	for rows.Next() {
		e := &ledger.Expense{}
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.ExpenseType, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
