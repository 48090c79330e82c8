package batch

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/apperr"
)

// Service defines batch business logic.
type Service interface {
	CreateBatch(ctx context.Context, owner uuid.UUID, req CreateBatchRequest) (*Batch, error)
	ListBatches(ctx context.Context, owner uuid.UUID) ([]*Batch, error)
	DeleteBatch(ctx context.Context, owner, id uuid.UUID) error
}

type service struct{ repo Repository }

// NewService creates a new batch service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateBatch(ctx context.Context, owner uuid.UUID, req CreateBatchRequest) (*Batch, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validationf("batch name is required")
	}

	b := &Batch{ID: uuid.New(), OwnerID: owner, Name: name}
	if err := s.repo.CreateBatch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListBatches(ctx context.Context, owner uuid.UUID) ([]*Batch, error) {
	return s.repo.ListBatches(ctx, owner)
}

func (s *service) DeleteBatch(ctx context.Context, owner, id uuid.UUID) error {
	return s.repo.DeleteBatch(ctx, owner, id)
}
