package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/casastock/casastock-backend/internal/modules/ledger"
)

// Service defines expense business logic.
type Service interface {
	RecordExpense(ctx context.Context, owner uuid.UUID, req ledger.ExpenseRequest) (*ledger.Expense, error)
	UpdateExpense(ctx context.Context, owner, id uuid.UUID, req ledger.ExpenseRequest) (*ledger.Expense, error)
	DeleteExpense(ctx context.Context, owner, id uuid.UUID) error
	ListExpenses(ctx context.Context, owner uuid.UUID) ([]*ledger.Expense, error)
}

type service struct {
	engine *ledger.Engine
	repo   Repository
}

// NewService creates a new expense service.
func NewService(engine *ledger.Engine, repo Repository) Service {
	return &service{engine: engine, repo: repo}
}

func (s *service) RecordExpense(ctx context.Context, owner uuid.UUID, req ledger.ExpenseRequest) (*ledger.Expense, error) {
	return s.engine.RecordExpense(ctx, owner, req)
}

func (s *service) UpdateExpense(ctx context.Context, owner, id uuid.UUID, req ledger.ExpenseRequest) (*ledger.Expense, error) {
	return s.engine.UpdateExpense(ctx, owner, id, req)
}

func (s *service) DeleteExpense(ctx context.Context, owner, id uuid.UUID) error {
	return s.engine.DeleteExpense(ctx, owner, id)
}

func (s *service) ListExpenses(ctx context.Context, owner uuid.UUID) ([]*ledger.Expense, error) {
	return s.repo.ListExpenses(ctx, owner)
}
