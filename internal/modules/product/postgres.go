package product

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `
	p.id, p.owner_id, p.batch_id, COALESCE(b.name, ''), p.name, p.description, p.image_url,
	p.buying_price, p.selling_price, p.initial_quantity, p.current_quantity, p.created_at`

func (r *postgresRepo) ListProducts(ctx context.Context, owner uuid.UUID) ([]*Product, error) {
	return r.query(ctx, `
		SELECT`+productColumns+`
		FROM products p
		LEFT JOIN batches b ON b.id = p.batch_id
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC`, owner)
}

func (r *postgresRepo) ListLowStock(ctx context.Context, owner uuid.UUID, threshold int) ([]*Product, error) {
	return r.query(ctx, `
		SELECT`+productColumns+`
		FROM products p
		LEFT JOIN batches b ON b.id = p.batch_id
		WHERE p.owner_id = $1 AND p.current_quantity <= $2
		ORDER BY p.current_quantity ASC, p.created_at DESC`, owner, threshold)
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, owner, id uuid.UUID, req UpdateProductRequest, batchID *uuid.UUID) (*Product, error) {
	p := &Product{}
	err := r.db.QueryRowContext(ctx, `
		UPDATE products SET
		  batch_id = $1, name = $2, description = $3, image_url = $4,
		  buying_price = $5, selling_price = $6, current_quantity = $7
		WHERE id = $8 AND owner_id = $9
		RETURNING id, owner_id, batch_id,
		  COALESCE((SELECT name FROM batches b WHERE b.id = products.batch_id), ''),
		  name, description, image_url, buying_price, selling_price,
		  initial_quantity, current_quantity, created_at`,
		batchID, req.Name, req.Description, req.ImageURL,
		req.BuyingPrice, req.SellingPrice, req.CurrentQuantity, id, owner).
		Scan(&p.ID, &p.OwnerID, &p.BatchID, &p.BatchName, &p.Name, &p.Description, &p.ImageURL,
			&p.BuyingPrice, &p.SellingPrice, &p.InitialQuantity, &p.CurrentQuantity, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, owner, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFoundf("product not found")
	}
	return nil
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.BatchID, &p.BatchName, &p.Name, &p.Description, &p.ImageURL,
			&p.BuyingPrice, &p.SellingPrice, &p.InitialQuantity, &p.CurrentQuantity, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
