package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemStore is an in-memory Store used by tests and local development. Each
// Update clones the owner's state, runs against the clone, and swaps it in
// only on success, so failed mutations leave nothing behind. A per-owner
// mutex serialises concurrent updates the same way the Postgres store's
// serializable transactions do.
type MemStore struct {
	mu     sync.Mutex
	owners map[uuid.UUID]*ownerState
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{owners: make(map[uuid.UUID]*ownerState)}
}

type ownerState struct {
	mu       sync.Mutex
	batches  map[uuid.UUID]bool
	products map[uuid.UUID]*Product
	orders   map[uuid.UUID]*Order
	expenses map[uuid.UUID]*Expense
	capital  []*CapitalSnapshot
}

func newOwnerState() *ownerState {
	return &ownerState{
		batches:  make(map[uuid.UUID]bool),
		products: make(map[uuid.UUID]*Product),
		orders:   make(map[uuid.UUID]*Order),
		expenses: make(map[uuid.UUID]*Expense),
	}
}

func (s *MemStore) owner(id uuid.UUID) *ownerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.owners[id]
	if !ok {
		state = newOwnerState()
		s.owners[id] = state
	}
	return state
}

// SeedBatch registers a batch id for an owner so stock purchases can
// reference it.
func (s *MemStore) SeedBatch(owner, batch uuid.UUID) {
	state := s.owner(owner)
	state.mu.Lock()
	defer state.mu.Unlock()
	state.batches[batch] = true
}

// SeedProduct stores a product directly, bypassing the engine.
func (s *MemStore) SeedProduct(owner uuid.UUID, p *Product) {
	state := s.owner(owner)
	state.mu.Lock()
	defer state.mu.Unlock()
	stored := *p
	state.products[p.ID] = &stored
}

// Product returns a copy of one of the owner's products, or nil.
func (s *MemStore) Product(owner, id uuid.UUID) *Product {
	state := s.owner(owner)
	state.mu.Lock()
	defer state.mu.Unlock()
	if p, ok := state.products[id]; ok {
		c := *p
		return &c
	}
	return nil
}

// Balance returns the current capital balance and whether any snapshot
// exists.
func (s *MemStore) Balance(owner uuid.UUID) (decimal.Decimal, bool) {
	state := s.owner(owner)
	state.mu.Lock()
	defer state.mu.Unlock()
	if len(state.capital) == 0 {
		return decimal.Zero, false
	}
	return state.capital[len(state.capital)-1].Amount, true
}

func (s *MemStore) Update(ctx context.Context, owner uuid.UUID, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state := s.owner(owner)
	state.mu.Lock()
	defer state.mu.Unlock()

	scratch := state.clone()
	if err := fn(&memTx{owner: owner, state: scratch}); err != nil {
		return err
	}

	state.batches = scratch.batches
	state.products = scratch.products
	state.orders = scratch.orders
	state.expenses = scratch.expenses
	state.capital = scratch.capital
	return nil
}

func (o *ownerState) clone() *ownerState {
	c := newOwnerState()
	for id := range o.batches {
		c.batches[id] = true
	}
	for id, p := range o.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, ord := range o.orders {
		co := *ord
		co.Lines = append([]*OrderLine(nil), ord.Lines...)
		c.orders[id] = &co
	}
	for id, e := range o.expenses {
		ce := *e
		c.expenses[id] = &ce
	}
	c.capital = append([]*CapitalSnapshot(nil), o.capital...)
	return c
}

type memTx struct {
	owner uuid.UUID
	state *ownerState
}

func (t *memTx) LatestCapital() (*CapitalSnapshot, error) {
	if len(t.state.capital) == 0 {
		return nil, nil
	}
	c := *t.state.capital[len(t.state.capital)-1]
	return &c, nil
}

func (t *memTx) AppendCapital(amount decimal.Decimal) (*CapitalSnapshot, error) {
	c := &CapitalSnapshot{
		ID:        uuid.New(),
		OwnerID:   t.owner,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	t.state.capital = append(t.state.capital, c)
	out := *c
	return &out, nil
}

func (t *memTx) BatchExists(id uuid.UUID) (bool, error) {
	return t.state.batches[id], nil
}

func (t *memTx) InsertProduct(p *Product) error {
	p.CreatedAt = time.Now()
	stored := *p
	t.state.products[p.ID] = &stored
	return nil
}

func (t *memTx) ProductsForUpdate(ids []uuid.UUID) (map[uuid.UUID]*Product, error) {
	found := make(map[uuid.UUID]*Product, len(ids))
	for _, id := range ids {
		if p, ok := t.state.products[id]; ok {
			c := *p
			found[id] = &c
		}
	}
	return found, nil
}

func (t *memTx) SetProductQuantity(id uuid.UUID, quantity int) error {
	if p, ok := t.state.products[id]; ok {
		p.CurrentQuantity = quantity
	}
	return nil
}

func (t *memTx) InsertOrder(o *Order) error {
	o.CreatedAt = time.Now()
	stored := *o
	stored.Lines = append([]*OrderLine(nil), o.Lines...)
	t.state.orders[o.ID] = &stored
	return nil
}

func (t *memTx) ExpenseByID(id uuid.UUID) (*Expense, error) {
	if e, ok := t.state.expenses[id]; ok {
		c := *e
		return &c, nil
	}
	return nil, nil
}

func (t *memTx) InsertExpense(e *Expense) error {
	e.CreatedAt = time.Now()
	stored := *e
	t.state.expenses[e.ID] = &stored
	return nil
}

func (t *memTx) UpdateExpense(e *Expense) error {
	stored := *e
	t.state.expenses[e.ID] = &stored
	return nil
}

func (t *memTx) DeleteExpense(id uuid.UUID) error {
	delete(t.state.expenses, id)
	return nil
}
