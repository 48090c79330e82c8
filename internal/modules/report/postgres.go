package report

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casastock/casastock-backend/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new postgres report repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) OrdersSince(ctx context.Context, owner uuid.UUID, since time.Time) ([]*OrderSales, error) {
	query := `SELECT o.id, o.created_at, o.shipping_charge,
			l.quantity, l.selling_price, COALESCE(p.buying_price, 0)
		FROM orders o
		JOIN order_lines l ON l.order_id = o.id
		LEFT JOIN products p ON p.id = l.product_id
		WHERE o.owner_id = $1 AND o.created_at >= $2
		ORDER BY o.created_at, o.id`

	rows, err := r.db.QueryContext(ctx, query, owner, since)
	if err != nil {
		return nil, apperr.Store(err)
	}
	defer rows.Close()

	var orders []*OrderSales
	byID := map[uuid.UUID]*OrderSales{}
	for rows.Next() {
		var id uuid.UUID
		var createdAt time.Time
		var shipping decimal.Decimal
		var line SaleLine
		if err := rows.Scan(&id, &createdAt, &shipping,
			&line.Quantity, &line.SellingPrice, &line.BuyingPrice); err != nil {
			return nil, apperr.Store(err)
		}
		o, ok := byID[id]
		if !ok {
			o = &OrderSales{CreatedAt: createdAt, ShippingCharge: shipping}
			byID[id] = o
			orders = append(orders, o)
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store(err)
	}
	return orders, nil
}
