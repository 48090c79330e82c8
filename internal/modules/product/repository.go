package product

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines product read and maintenance storage. Stock creation
// goes through the ledger engine, not this repository.
type Repository interface {
	ListProducts(ctx context.Context, owner uuid.UUID) ([]*Product, error)

	// ListLowStock returns products with current quantity at or below the
	// threshold, most depleted first.
	ListLowStock(ctx context.Context, owner uuid.UUID, threshold int) ([]*Product, error)

	// UpdateProduct overwrites the editable fields and returns the updated
	// row.
	UpdateProduct(ctx context.Context, owner, id uuid.UUID, req UpdateProductRequest, batchID *uuid.UUID) (*Product, error)

	DeleteProduct(ctx context.Context, owner, id uuid.UUID) error
}
