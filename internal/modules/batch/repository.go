package batch

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines batch data storage.
type Repository interface {
	CreateBatch(ctx context.Context, b *Batch) error
	ListBatches(ctx context.Context, owner uuid.UUID) ([]*Batch, error)

	// DeleteBatch removes the batch and nulls the batch reference on its
	// products; the products themselves survive.
	DeleteBatch(ctx context.Context, owner, id uuid.UUID) error
}
