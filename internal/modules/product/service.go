package product

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/apperr"
	"github.com/casastock/casastock-backend/internal/modules/ledger"
)

// DefaultLowStockThreshold is used when the caller does not pass one.
const DefaultLowStockThreshold = 5

// Service defines product business logic. Adding stock is a ledger mutation
// (it debits capital); everything else is plain maintenance.
type Service interface {
	AddStock(ctx context.Context, owner uuid.UUID, req ledger.StockPurchaseRequest) (*ledger.Product, error)
	ListProducts(ctx context.Context, owner uuid.UUID) ([]*Product, error)
	ListLowStock(ctx context.Context, owner uuid.UUID, threshold int) ([]*Product, error)
	UpdateProduct(ctx context.Context, owner, id uuid.UUID, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, owner, id uuid.UUID) error
}

type service struct {
	engine *ledger.Engine
	repo   Repository
}

// NewService creates a new product service.
func NewService(engine *ledger.Engine, repo Repository) Service {
	return &service{engine: engine, repo: repo}
}

func (s *service) AddStock(ctx context.Context, owner uuid.UUID, req ledger.StockPurchaseRequest) (*ledger.Product, error) {
	return s.engine.RecordStockPurchase(ctx, owner, req)
}

func (s *service) ListProducts(ctx context.Context, owner uuid.UUID) ([]*Product, error) {
	return s.repo.ListProducts(ctx, owner)
}

func (s *service) ListLowStock(ctx context.Context, owner uuid.UUID, threshold int) ([]*Product, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return s.repo.ListLowStock(ctx, owner, threshold)
}

func (s *service) UpdateProduct(ctx context.Context, owner, id uuid.UUID, req UpdateProductRequest) (*Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperr.Validationf("product name is required")
	}
	if req.BuyingPrice.IsNegative() {
		return nil, apperr.Validationf("buying price must not be negative")
	}
	if req.SellingPrice.IsNegative() {
		return nil, apperr.Validationf("selling price must not be negative")
	}
	if req.CurrentQuantity < 0 {
		return nil, apperr.Validationf("quantity must be a whole number")
	}

	var batchID *uuid.UUID
	if req.BatchID != "" {
		parsed, err := uuid.Parse(req.BatchID)
		if err != nil {
			return nil, apperr.Validationf("invalid batch id")
		}
		batchID = &parsed
	}

	return s.repo.UpdateProduct(ctx, owner, id, req, batchID)
}

func (s *service) DeleteProduct(ctx context.Context, owner, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, owner, id)
}
