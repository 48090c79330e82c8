package capital

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casastock/casastock-backend/internal/modules/ledger"
)

// AdjustRequest is the payload for adding to or withdrawing from capital.
type AdjustRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Service defines capital business logic.
type Service interface {
	Current(ctx context.Context, owner uuid.UUID) (*ledger.CapitalSnapshot, error)
	Adjust(ctx context.Context, owner uuid.UUID, req AdjustRequest) (*ledger.CapitalSnapshot, error)
}

type service struct {
	engine *ledger.Engine
	repo   Repository
}

// NewService creates a new capital service.
func NewService(engine *ledger.Engine, repo Repository) Service {
	return &service{engine: engine, repo: repo}
}

func (s *service) Current(ctx context.Context, owner uuid.UUID) (*ledger.CapitalSnapshot, error) {
	return s.repo.LatestCapital(ctx, owner)
}

func (s *service) Adjust(ctx context.Context, owner uuid.UUID, req AdjustRequest) (*ledger.CapitalSnapshot, error) {
	return s.engine.AdjustCapital(ctx, owner, req.Amount)
}
