// Package ledger implements the capital ledger and stock engine. Every
// mutation — stock purchase, order placement, expense bookkeeping, capital
// adjustment — validates its input, computes the resulting balances, and
// applies them as one atomic unit through a Store.
package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casastock/casastock-backend/internal/apperr"
)

// Engine executes ledger and stock mutations. It holds no state of its own;
// all persistence goes through the injected Store.
type Engine struct {
	store Store
}

// NewEngine creates a new ledger engine.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// RecordStockPurchase registers a new product and debits capital by its
// wholesale cost (buying price × quantity). The owner must have initialised
// capital first; otherwise nothing is created.
func (e *Engine) RecordStockPurchase(ctx context.Context, owner uuid.UUID, req StockPurchaseRequest) (*Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validationf("product name is required")
	}
	if req.BatchID == "" {
		return nil, apperr.Validationf("batch is required")
	}
	batchID, err := uuid.Parse(req.BatchID)
	if err != nil {
		return nil, apperr.Validationf("invalid batch id")
	}
	if req.BuyingPrice.IsNegative() {
		return nil, apperr.Validationf("buying price must not be negative")
	}
	if req.SellingPrice.IsNegative() {
		return nil, apperr.Validationf("selling price must not be negative")
	}
	if req.Quantity < 0 {
		return nil, apperr.Validationf("quantity must be a whole number")
	}

	product := &Product{
		ID:              uuid.New(),
		OwnerID:         owner,
		BatchID:         &batchID,
		Name:            name,
		Description:     strings.TrimSpace(req.Description),
		ImageURL:        strings.TrimSpace(req.ImageURL),
		BuyingPrice:     req.BuyingPrice,
		SellingPrice:    req.SellingPrice,
		InitialQuantity: req.Quantity,
		CurrentQuantity: req.Quantity,
	}

	err = e.store.Update(ctx, owner, func(tx Tx) error {
		ok, err := tx.BatchExists(batchID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFoundf("batch not found")
		}

		capital, err := tx.LatestCapital()
		if err != nil {
			return err
		}
		if capital == nil {
			return apperr.Preconditionf("capital not initialized")
		}

		if err := tx.InsertProduct(product); err != nil {
			return err
		}

		cost := req.BuyingPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		_, err = tx.AppendCapital(capital.Amount.Sub(cost))
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// PlaceOrder atomically creates an order with its lines, decrements stock,
// and credits capital with the order revenue. Requested quantities for the
// same product are summed across lines before the availability check, and an
// order that overdraws any product is rejected whole, reporting every
// shortage.
func (e *Engine) PlaceOrder(ctx context.Context, owner uuid.UUID, req PlaceOrderRequest) (*Order, error) {
	if strings.TrimSpace(req.Address) == "" {
		return nil, apperr.Validationf("address is required")
	}
	if len(req.Lines) == 0 {
		return nil, apperr.Validationf("order must contain at least one line")
	}
	if req.ShippingCharge.IsNegative() {
		return nil, apperr.Validationf("shipping charge must not be negative")
	}

	// Aggregate demand per product, keeping first-seen order so shortage
	// reports are deterministic.
	demand := make(map[uuid.UUID]int)
	var productIDs []uuid.UUID
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, apperr.Validationf("quantity must be greater than zero")
		}
		if line.SellingPrice.IsNegative() {
			return nil, apperr.Validationf("selling price must not be negative")
		}
		pid, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, apperr.Validationf("invalid product id")
		}
		if _, seen := demand[pid]; !seen {
			productIDs = append(productIDs, pid)
		}
		demand[pid] += line.Quantity
	}

	order := &Order{
		ID:             uuid.New(),
		OwnerID:        owner,
		Address:        strings.TrimSpace(req.Address),
		ShippingCharge: req.ShippingCharge,
	}
	total := req.ShippingCharge
	for _, line := range req.Lines {
		pid, _ := uuid.Parse(line.ProductID)
		lineTotal := line.SellingPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		order.Lines = append(order.Lines, &OrderLine{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    pid,
			Quantity:     line.Quantity,
			SellingPrice: line.SellingPrice,
			LineTotal:    lineTotal,
		})
	}
	order.Total = total

	err := e.store.Update(ctx, owner, func(tx Tx) error {
		products, err := tx.ProductsForUpdate(productIDs)
		if err != nil {
			return err
		}
		for _, pid := range productIDs {
			if _, ok := products[pid]; !ok {
				return apperr.NotFoundf("product %s not found", pid)
			}
		}

		capital, err := tx.LatestCapital()
		if err != nil {
			return err
		}
		if capital == nil {
			return apperr.Preconditionf("capital not initialized")
		}

		var shortages []apperr.StockShortage
		for _, pid := range productIDs {
			p := products[pid]
			if demand[pid] > p.CurrentQuantity {
				shortages = append(shortages, apperr.StockShortage{
					ProductID: pid,
					Name:      p.Name,
					Requested: demand[pid],
					Available: p.CurrentQuantity,
				})
			}
		}
		if len(shortages) > 0 {
			return &apperr.InsufficientStockError{Shortages: shortages}
		}

		if err := tx.InsertOrder(order); err != nil {
			return err
		}
		for _, pid := range productIDs {
			p := products[pid]
			if err := tx.SetProductQuantity(pid, p.CurrentQuantity-demand[pid]); err != nil {
				return err
			}
		}

		_, err = tx.AppendCapital(capital.Amount.Add(total))
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// RecordExpense persists an expense and debits capital by its amount.
func (e *Engine) RecordExpense(ctx context.Context, owner uuid.UUID, req ExpenseRequest) (*Expense, error) {
	if err := validateExpense(req); err != nil {
		return nil, err
	}

	expense := &Expense{
		ID:          uuid.New(),
		OwnerID:     owner,
		ExpenseType: strings.TrimSpace(req.ExpenseType),
		Amount:      req.Amount,
	}

	err := e.store.Update(ctx, owner, func(tx Tx) error {
		capital, err := tx.LatestCapital()
		if err != nil {
			return err
		}
		if capital == nil {
			return apperr.Preconditionf("capital not initialized")
		}
		if err := tx.InsertExpense(expense); err != nil {
			return err
		}
		_, err = tx.AppendCapital(capital.Amount.Sub(req.Amount))
		return err
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense rewrites an expense and applies only the amount delta to
// capital, so editing an expense from A to B leaves the balance exactly as
// if it had been recorded with B in the first place.
func (e *Engine) UpdateExpense(ctx context.Context, owner, id uuid.UUID, req ExpenseRequest) (*Expense, error) {
	if err := validateExpense(req); err != nil {
		return nil, err
	}

	var updated *Expense
	err := e.store.Update(ctx, owner, func(tx Tx) error {
		existing, err := tx.ExpenseByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFoundf("expense not found")
		}

		capital, err := tx.LatestCapital()
		if err != nil {
			return err
		}
		if capital == nil {
			return apperr.Preconditionf("capital not initialized")
		}

		updated = &Expense{
			ID:          existing.ID,
			OwnerID:     existing.OwnerID,
			ExpenseType: strings.TrimSpace(req.ExpenseType),
			Amount:      req.Amount,
			CreatedAt:   existing.CreatedAt,
		}
		if err := tx.UpdateExpense(updated); err != nil {
			return err
		}

		delta := req.Amount.Sub(existing.Amount)
		_, err = tx.AppendCapital(capital.Amount.Sub(delta))
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteExpense removes an expense and credits its full amount back to
// capital.
func (e *Engine) DeleteExpense(ctx context.Context, owner, id uuid.UUID) error {
	return e.store.Update(ctx, owner, func(tx Tx) error {
		existing, err := tx.ExpenseByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFoundf("expense not found")
		}

		capital, err := tx.LatestCapital()
		if err != nil {
			return err
		}
		if capital == nil {
			return apperr.Preconditionf("capital not initialized")
		}

		if err := tx.DeleteExpense(id); err != nil {
			return err
		}
		_, err = tx.AppendCapital(capital.Amount.Add(existing.Amount))
		return err
	})
}

// AdjustCapital adds amount to the current balance, creating the ledger with
// amount as its opening value when no snapshot exists yet. Amount may be
// negative to record a withdrawal or correction.
func (e *Engine) AdjustCapital(ctx context.Context, owner uuid.UUID, amount decimal.Decimal) (*CapitalSnapshot, error) {
	var snapshot *CapitalSnapshot
	err := e.store.Update(ctx, owner, func(tx Tx) error {
		capital, err := tx.LatestCapital()
		if err != nil {
			return err
		}
		next := amount
		if capital != nil {
			next = capital.Amount.Add(amount)
		}
		snapshot, err = tx.AppendCapital(next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func validateExpense(req ExpenseRequest) error {
	if strings.TrimSpace(req.ExpenseType) == "" {
		return apperr.Validationf("expense type is required")
	}
	if !req.Amount.IsPositive() {
		return apperr.Validationf("amount must be greater than zero")
	}
	return nil
}
