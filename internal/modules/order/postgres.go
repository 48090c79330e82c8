package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListOrders(ctx context.Context, owner uuid.UUID) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, address, shipping_charge, total, created_at
		FROM orders
		WHERE owner_id = $1
		ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	byID := make(map[uuid.UUID]*Order)
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.Address, &o.ShippingCharge, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lineRows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.order_id, l.product_id, COALESCE(p.name, ''),
		       l.quantity, l.selling_price, l.line_total
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		LEFT JOIN products p ON p.id = l.product_id
		WHERE o.owner_id = $1
		ORDER BY l.id`, owner)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		line := &Line{}
		var orderID uuid.UUID
		if err := lineRows.Scan(&line.ID, &orderID, &line.ProductID, &line.ProductName,
			&line.Quantity, &line.SellingPrice, &line.LineTotal); err != nil {
			return nil, err
		}
		if o, ok := byID[orderID]; ok {
			o.Lines = append(o.Lines, line)
		}
	}
	return orders, lineRows.Err()
}

func (r *postgresRepo) GetOrder(ctx context.Context, owner, id uuid.UUID) (*Order, error) {
	o := &Order{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, address, shipping_charge, total, created_at
		FROM orders
		WHERE id = $1 AND owner_id = $2`, id, owner).
		Scan(&o.ID, &o.OwnerID, &o.Address, &o.ShippingCharge, &o.Total, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.product_id, COALESCE(p.name, ''), l.quantity, l.selling_price, l.line_total
		FROM order_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.order_id = $1
		ORDER BY l.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		line := &Line{}
		if err := rows.Scan(&line.ID, &line.ProductID, &line.ProductName,
			&line.Quantity, &line.SellingPrice, &line.LineTotal); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, line)
	}
	return o, rows.Err()
}
