package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/modules/ledger"
)

// Service defines order business logic. Placement is delegated to the
// ledger engine, which validates the cart, checks aggregate stock, and
// applies the stock decrement and capital credit atomically.
type Service interface {
	PlaceOrder(ctx context.Context, owner uuid.UUID, req ledger.PlaceOrderRequest) (*ledger.Order, error)
	ListOrders(ctx context.Context, owner uuid.UUID) ([]*Order, error)
	GetOrder(ctx context.Context, owner, id uuid.UUID) (*Order, error)
}

type service struct {
	engine *ledger.Engine
	repo   Repository
}

// NewService creates a new order service.
func NewService(engine *ledger.Engine, repo Repository) Service {
	return &service{engine: engine, repo: repo}
}

func (s *service) PlaceOrder(ctx context.Context, owner uuid.UUID, req ledger.PlaceOrderRequest) (*ledger.Order, error) {
	return s.engine.PlaceOrder(ctx, owner, req)
}

func (s *service) ListOrders(ctx context.Context, owner uuid.UUID) ([]*Order, error) {
	return s.repo.ListOrders(ctx, owner)
}

func (s *service) GetOrder(ctx context.Context, owner, id uuid.UUID) (*Order, error) {
	return s.repo.GetOrder(ctx, owner, id)
}
