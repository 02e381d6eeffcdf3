package service

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

import (
	"context"

	"casino-engine/internal/model"
)

// AccountStore holds balances and luck. ApplyDelta is the unit of atomicity:
// it fails with repository.ErrInsufficientFunds, leaving the balance
// unchanged, when the result would be negative.
type AccountStore interface {
	Create(ctx context.Context, acc *model.Account) (*model.Account, error)
	Get(ctx context.Context, id int64) (*model.Account, error)
	ApplyDelta(ctx context.Context, id int64, delta int64) (*model.Account, error)
	SetLuck(ctx context.Context, id int64, luck int) (*model.Account, error)
}

// TransactionLog is the append-only ledger.
type TransactionLog interface {
	Append(ctx context.Context, tx *model.Transaction) error
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]*model.Transaction, error)
	SumByAccount(ctx context.Context, accountID int64) (int64, error)
}

// PromoCatalog looks up codes and tracks their remaining uses.
type PromoCatalog interface {
	Get(ctx context.Context, code string) (*model.PromoCode, error)
	ConsumeUse(ctx context.Context, code string) error
	RestoreUse(ctx context.Context, code string) error
}

// RedemptionGuard atomically marks an (account, code) pair as redeemed.
type RedemptionGuard interface {
	Claim(ctx context.Context, accountID int64, code string) (bool, error)
	Release(ctx context.Context, accountID int64, code string) error
}

// RecoveryJournal durably records settlements that are owed.
type RecoveryJournal interface {
	Record(ctx context.Context, e *model.RecoveryEntry) error
	Pending(ctx context.Context, limit int) ([]*model.RecoveryEntry, error)
	Update(ctx context.Context, e *model.RecoveryEntry) error
}
