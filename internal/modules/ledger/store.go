package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store gives the engine atomic access to one owner's data. Update runs fn
// as a single all-or-nothing unit: if fn returns an error, nothing it did is
// applied. Concurrent updates for the same owner serialise rather than
// interleave, so two orders cannot both decrement stock from a stale read.
type Store interface {
	Update(ctx context.Context, owner uuid.UUID, fn func(tx Tx) error) error
}

// Tx is the owner-scoped view the engine operates on inside Update. Reads
// through a Tx see the in-progress state of the current unit.
type Tx interface {
	// LatestCapital returns the most recent capital snapshot, or nil if the
	// owner has never initialised capital.
	LatestCapital() (*CapitalSnapshot, error)

	// AppendCapital appends a snapshot carrying the new absolute balance.
	AppendCapital(amount decimal.Decimal) (*CapitalSnapshot, error)

	// BatchExists reports whether the owner has a batch with the given id.
	BatchExists(id uuid.UUID) (bool, error)

	// InsertProduct persists a new product and fills in its CreatedAt.
	InsertProduct(p *Product) error

	// ProductsForUpdate fetches the given products and locks them against
	// concurrent writers for the remainder of the unit. Missing ids are
	// simply absent from the result.
	ProductsForUpdate(ids []uuid.UUID) (map[uuid.UUID]*Product, error)

	// SetProductQuantity overwrites a product's current quantity.
	SetProductQuantity(id uuid.UUID, quantity int) error

	// InsertOrder persists an order together with all its lines.
	InsertOrder(o *Order) error

	// ExpenseByID returns the owner's expense, or nil if absent.
	ExpenseByID(id uuid.UUID) (*Expense, error)

	InsertExpense(e *Expense) error
	UpdateExpense(e *Expense) error
	DeleteExpense(id uuid.UUID) error
}
