package repository

import (
	"context"
	"sync"
	"time"

	"casino-engine/internal/model"
)

// MemoryAccountStore is an in-process account store. Every method returns
// copies so callers cannot mutate stored state.
type MemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[int64]*model.Account
}

// NewMemoryAccountStore creates an empty store.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[int64]*model.Account)}
}

// Create inserts a new account with a zero balance.
func (s *MemoryAccountStore) Create(_ context.Context, acc *model.Account) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[acc.ID]; ok {
		return nil, ErrAccountExists
	}
	now := time.Now().UTC()
	stored := *acc
	stored.Balance = 0
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.accounts[acc.ID] = &stored

	out := stored
	return &out, nil
}

// Get returns a copy of the account.
func (s *MemoryAccountStore) Get(_ context.Context, id int64) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	out := *acc
	return &out, nil
}

// ApplyDelta adds delta to the balance unless the result would be negative.
func (s *MemoryAccountStore) ApplyDelta(_ context.Context, id int64, delta int64) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	if acc.Balance+delta < 0 {
		return nil, ErrInsufficientFunds
	}
	acc.Balance += delta
	acc.UpdatedAt = time.Now().UTC()

	out := *acc
	return &out, nil
}

// SetLuck overwrites the account's luck.
func (s *MemoryAccountStore) SetLuck(_ context.Context, id int64, luck int) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	acc.Luck = luck
	acc.UpdatedAt = time.Now().UTC()

	out := *acc
	return &out, nil
}

// MemoryTransactionLog is an in-process append-only log.
type MemoryTransactionLog struct {
	mu      sync.RWMutex
	records []model.Transaction
	ids     map[string]struct{}
}

// NewMemoryTransactionLog creates an empty log.
func NewMemoryTransactionLog() *MemoryTransactionLog {
	return &MemoryTransactionLog{ids: make(map[string]struct{})}
}

// Append stores a copy of tx, assigning its id and timestamp when unset.
// A record whose id is already stored is ignored.
func (l *MemoryTransactionLog) Append(_ context.Context, tx *model.Transaction) error {
	if err := stamp(tx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.ids[tx.ID]; ok {
		return nil
	}
	l.ids[tx.ID] = struct{}{}
	l.records = append(l.records, *tx)
	return nil
}

// ListByAccount returns up to limit records for an account, newest first.
func (l *MemoryTransactionLog) ListByAccount(_ context.Context, accountID int64, limit int) ([]*model.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*model.Transaction
	for i := len(l.records) - 1; i >= 0 && len(out) < limit; i-- {
		if l.records[i].AccountID == accountID {
			tx := l.records[i]
			out = append(out, &tx)
		}
	}
	return out, nil
}

// SumByAccount returns the sum of all logged amounts for an account.
func (l *MemoryTransactionLog) SumByAccount(_ context.Context, accountID int64) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var sum int64
	for _, tx := range l.records {
		if tx.AccountID == accountID {
			sum += tx.Amount
		}
	}
	return sum, nil
}

// Len returns the number of records in the log.
func (l *MemoryTransactionLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// MemoryPromoCatalog is an in-process promo catalog.
type MemoryPromoCatalog struct {
	mu    sync.Mutex
	codes map[string]*model.PromoCode
}

// NewMemoryPromoCatalog creates a catalog holding codes.
func NewMemoryPromoCatalog(codes ...model.PromoCode) *MemoryPromoCatalog {
	c := &MemoryPromoCatalog{codes: make(map[string]*model.PromoCode)}
	for _, p := range codes {
		_ = c.Upsert(context.Background(), &p)
	}
	return c
}

// Upsert creates or replaces a catalog entry.
func (c *MemoryPromoCatalog) Upsert(_ context.Context, p *model.PromoCode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *p
	stored.Code = model.NormalizeCode(p.Code)
	c.codes[stored.Code] = &stored
	return nil
}

// Get looks a code up case-insensitively.
func (c *MemoryPromoCatalog) Get(_ context.Context, code string) (*model.PromoCode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.codes[model.NormalizeCode(code)]
	if !ok {
		return nil, ErrPromoNotFound
	}
	out := *p
	return &out, nil
}

// ConsumeUse takes one use from a capped code.
func (c *MemoryPromoCatalog) ConsumeUse(_ context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.codes[model.NormalizeCode(code)]
	if !ok || !p.Redeemable() {
		return ErrPromoExhausted
	}
	if p.UsesLeft != model.UnlimitedUses {
		p.UsesLeft--
	}
	return nil
}

// RestoreUse gives back a use taken by ConsumeUse.
func (c *MemoryPromoCatalog) RestoreUse(_ context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.codes[model.NormalizeCode(code)]; ok && p.UsesLeft != model.UnlimitedUses {
		p.UsesLeft++
	}
	return nil
}

type redemptionKey struct {
	accountID int64
	code      string
}

// MemoryRedemptionGuard records which account redeemed which code.
type MemoryRedemptionGuard struct {
	mu      sync.Mutex
	claimed map[redemptionKey]struct{}
}

// NewMemoryRedemptionGuard creates an empty guard.
func NewMemoryRedemptionGuard() *MemoryRedemptionGuard {
	return &MemoryRedemptionGuard{claimed: make(map[redemptionKey]struct{})}
}

// Claim reports false when accountID already redeemed code.
func (g *MemoryRedemptionGuard) Claim(_ context.Context, accountID int64, code string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := redemptionKey{accountID, model.NormalizeCode(code)}
	if _, ok := g.claimed[key]; ok {
		return false, nil
	}
	g.claimed[key] = struct{}{}
	return true, nil
}

// Release removes a claim.
func (g *MemoryRedemptionGuard) Release(_ context.Context, accountID int64, code string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.claimed, redemptionKey{accountID, model.NormalizeCode(code)})
	return nil
}
