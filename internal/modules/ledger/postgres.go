package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/casastock/casastock-backend/internal/apperr"
)

type postgresStore struct{ db *sql.DB }

// NewPostgresStore creates a Store backed by Postgres. Every Update runs in
// a serializable transaction with row locks on the products and capital it
// touches, so concurrent mutations for one owner serialise.
func NewPostgresStore(db *sql.DB) Store { return &postgresStore{db: db} }

func (s *postgresStore) Update(ctx context.Context, owner uuid.UUID, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return apperr.Store(err)
	}
	defer tx.Rollback()

	if err := fn(&pgTx{ctx: ctx, tx: tx, owner: owner}); err != nil {
		return apperr.Store(err)
	}
	return apperr.Store(tx.Commit())
}

type pgTx struct {
	ctx   context.Context
	tx    *sql.Tx
	owner uuid.UUID
}

func (t *pgTx) LatestCapital() (*CapitalSnapshot, error) {
	c := &CapitalSnapshot{}
	err := t.tx.QueryRowContext(t.ctx, `
		SELECT id, owner_id, amount, created_at
		FROM capital
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
		FOR UPDATE`, t.owner).
		Scan(&c.ID, &c.OwnerID, &c.Amount, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select capital: %w", err)
	}
	return c, nil
}

func (t *pgTx) AppendCapital(amount decimal.Decimal) (*CapitalSnapshot, error) {
	c := &CapitalSnapshot{ID: uuid.New(), OwnerID: t.owner, Amount: amount}
	err := t.tx.QueryRowContext(t.ctx, `
		INSERT INTO capital (id, owner_id, amount)
		VALUES ($1, $2, $3)
		RETURNING created_at`, c.ID, c.OwnerID, c.Amount).
		Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert capital: %w", err)
	}
	return c, nil
}

func (t *pgTx) BatchExists(id uuid.UUID) (bool, error) {
	var exists bool
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT EXISTS(SELECT 1 FROM batches WHERE id = $1 AND owner_id = $2)`,
		id, t.owner).Scan(&exists)
	return exists, err
}

func (t *pgTx) InsertProduct(p *Product) error {
	err := t.tx.QueryRowContext(t.ctx, `
		INSERT INTO products
		  (id, owner_id, batch_id, name, description, image_url,
		   buying_price, selling_price, initial_quantity, current_quantity)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at`,
		p.ID, p.OwnerID, p.BatchID, p.Name, p.Description, p.ImageURL,
		p.BuyingPrice, p.SellingPrice, p.InitialQuantity, p.CurrentQuantity).
		Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (t *pgTx) ProductsForUpdate(ids []uuid.UUID) (map[uuid.UUID]*Product, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}
	rows, err := t.tx.QueryContext(t.ctx, `
		SELECT id, owner_id, batch_id, name, description, image_url,
		       buying_price, selling_price, initial_quantity, current_quantity, created_at
		FROM products
		WHERE owner_id = $1 AND id = ANY($2::uuid[])
		FOR UPDATE`, t.owner, pq.Array(strIDs))
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	defer rows.Close()

	products := make(map[uuid.UUID]*Product, len(ids))
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.BatchID, &p.Name, &p.Description, &p.ImageURL,
			&p.BuyingPrice, &p.SellingPrice, &p.InitialQuantity, &p.CurrentQuantity, &p.CreatedAt); err != nil {
			return nil, err
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

func (t *pgTx) SetProductQuantity(id uuid.UUID, quantity int) error {
	_, err := t.tx.ExecContext(t.ctx,
		`UPDATE products SET current_quantity = $1 WHERE id = $2 AND owner_id = $3`,
		quantity, id, t.owner)
	return err
}

func (t *pgTx) InsertOrder(o *Order) error {
	err := t.tx.QueryRowContext(t.ctx, `
		INSERT INTO orders (id, owner_id, address, shipping_charge, total)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		o.ID, o.OwnerID, o.Address, o.ShippingCharge, o.Total).
		Scan(&o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, line := range o.Lines {
		_, err := t.tx.ExecContext(t.ctx, `
			INSERT INTO order_lines (id, order_id, product_id, quantity, selling_price, line_total)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			line.ID, o.ID, line.ProductID, line.Quantity, line.SellingPrice, line.LineTotal)
		if err != nil {
			return fmt.Errorf("insert order_line: %w", err)
		}
	}
	return nil
}

func (t *pgTx) ExpenseByID(id uuid.UUID) (*Expense, error) {
	e := &Expense{}
	err := t.tx.QueryRowContext(t.ctx, `
		SELECT id, owner_id, expense_type, amount, created_at
		FROM expenses
		WHERE id = $1 AND owner_id = $2
		FOR UPDATE`, id, t.owner).
		Scan(&e.ID, &e.OwnerID, &e.ExpenseType, &e.Amount, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select expense: %w", err)
	}
	return e, nil
}

func (t *pgTx) InsertExpense(e *Expense) error {
	err := t.tx.QueryRowContext(t.ctx, `
		INSERT INTO expenses (id, owner_id, expense_type, amount)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at`,
		e.ID, e.OwnerID, e.ExpenseType, e.Amount).
		Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (t *pgTx) UpdateExpense(e *Expense) error {
	_, err := t.tx.ExecContext(t.ctx,
		`UPDATE expenses SET expense_type = $1, amount = $2 WHERE id = $3 AND owner_id = $4`,
		e.ExpenseType, e.Amount, e.ID, t.owner)
	return err
}

func (t *pgTx) DeleteExpense(id uuid.UUID) error {
	_, err := t.tx.ExecContext(t.ctx,
		`DELETE FROM expenses WHERE id = $1 AND owner_id = $2`, id, t.owner)
	return err
}
