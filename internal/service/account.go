package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"casino-engine/internal/model"
	"casino-engine/internal/repository"
)

// History page bounds.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// AccountOptions configures new accounts.
type AccountOptions struct {
	DefaultLuck  int
	WelcomeBonus int64
}

// Movement is the result of a deposit, withdrawal or bonus credit.
type Movement struct {
	AccountID     int64        `json:"account_id"`
	Kind          model.TxKind `json:"kind"`
	Amount        int64        `json:"amount"`
	Balance       int64        `json:"balance"`
	TransactionID string       `json:"transaction_id"`
}

// Audit compares an account's stored balance with the sum of its log.
// Accounts open at zero, so Drift is zero unless a settlement is still owed
// or the two stores disagree.
type Audit struct {
	AccountID int64 `json:"account_id"`
	Balance   int64 `json:"balance"`
	LedgerSum int64 `json:"ledger_sum"`
	Drift     int64 `json:"drift"`
}

// AccountService handles account lifecycle and direct balance movements.
type AccountService struct {
	*ledger
	opts AccountOptions
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(deps Deps, opts AccountOptions) *AccountService {
	if opts.DefaultLuck < model.MinLuck || opts.DefaultLuck > model.MaxLuck {
		opts.DefaultLuck = model.DefaultLuck
	}
	return &AccountService{
		ledger: newLedger(deps),
		opts:   opts,
	}
}

// Ensure returns the account, creating it when missing. created reports
// whether this call created it. New accounts start with a zero balance plus
// the welcome bonus, if one is configured.
func (s *AccountService) Ensure(ctx context.Context, id int64, username string, referredBy *int64) (acc *model.Account, created bool, err error) {
	if err := s.lock(ctx, id); err != nil {
		return nil, false, err
	}
	defer s.Locks.Unlock(id)

	acc, err = s.Accounts.Get(ctx, id)
	if err == nil {
		return acc, false, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, false, translate(err)
	}

	// Referrer must exist and cannot be the account itself
	if referredBy != nil {
		if *referredBy == id {
			referredBy = nil
		} else if _, err := s.Accounts.Get(ctx, *referredBy); err != nil {
			referredBy = nil
		}
	}

	acc, err = s.Accounts.Create(ctx, &model.Account{
		ID:         id,
		Username:   username,
		Luck:       s.opts.DefaultLuck,
		ReferredBy: referredBy,
	})
	if errors.Is(err, repository.ErrAccountExists) {
		// Created by another engine instance in the meantime
		acc, err = s.Accounts.Get(ctx, id)
		if err != nil {
			return nil, false, translate(err)
		}
		return acc, false, nil
	}
	if err != nil {
		return nil, false, translate(err)
	}

	log.Info().Int64("account_id", id).Str("username", username).Msg("Account created")

	if s.opts.WelcomeBonus > 0 {
		m, err := s.credit(ctx, id, model.TxKindWelcomeBonus, s.opts.WelcomeBonus, "welcome bonus")
		if err != nil {
			return nil, true, err
		}
		acc.Balance = m.Balance
	}
	return acc, true, nil
}

// Get returns the account.
func (s *AccountService) Get(ctx context.Context, id int64) (*model.Account, error) {
	acc, err := s.Accounts.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return acc, nil
}

// Deposit credits amount and appends a deposit record.
func (s *AccountService) Deposit(ctx context.Context, id int64, amount int64) (*Movement, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := s.lock(ctx, id); err != nil {
		return nil, err
	}
	defer s.Locks.Unlock(id)

	return s.credit(ctx, id, model.TxKindDeposit, amount, "")
}

// Withdraw debits amount and appends a withdraw record with a negative
// amount. The balance never goes below zero.
func (s *AccountService) Withdraw(ctx context.Context, id int64, amount int64) (*Movement, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := s.lock(ctx, id); err != nil {
		return nil, err
	}
	defer s.Locks.Unlock(id)

	acc, err := s.Accounts.ApplyDelta(ctx, id, -amount)
	if err != nil {
		return nil, translate(err)
	}

	p := &posting{
		Reference: uuid.NewString(),
		AccountID: id,
		Kind:      model.TxKindWithdraw,
		Bet:       amount,
		Credited:  true,
		Balance:   acc.Balance,
	}
	if err := s.settle(context.WithoutCancel(ctx), movementLogger(p), p); err != nil {
		return nil, err
	}
	return p.movement(), nil
}

// SetLuck overwrites the account's luck. It is the only path that changes
// luck and it serializes with wagers on the same account.
func (s *AccountService) SetLuck(ctx context.Context, id int64, luck int) (*model.Account, error) {
	if luck < model.MinLuck || luck > model.MaxLuck {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLuck, luck)
	}

	if err := s.lock(ctx, id); err != nil {
		return nil, err
	}
	defer s.Locks.Unlock(id)

	acc, err := s.Accounts.SetLuck(ctx, id, luck)
	if err != nil {
		return nil, translate(err)
	}
	log.Info().Int64("account_id", id).Int("luck", luck).Msg("Account luck updated")
	return acc, nil
}

// History returns the account's most recent records, newest first. A
// non-positive limit means DefaultHistoryLimit.
func (s *AccountService) History(ctx context.Context, id int64, limit int) ([]*model.Transaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	if _, err := s.Accounts.Get(ctx, id); err != nil {
		return nil, translate(err)
	}
	txs, err := s.Transactions.ListByAccount(ctx, id, limit)
	if err != nil {
		return nil, translate(err)
	}
	return txs, nil
}

// Audit reads the balance and the log sum under the account lock so no
// movement lands between the two reads.
func (s *AccountService) Audit(ctx context.Context, id int64) (*Audit, error) {
	if err := s.lock(ctx, id); err != nil {
		return nil, err
	}
	defer s.Locks.Unlock(id)

	acc, err := s.Accounts.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	sum, err := s.Transactions.SumByAccount(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	a := &Audit{AccountID: id, Balance: acc.Balance, LedgerSum: sum, Drift: acc.Balance - sum}
	if a.Drift != 0 {
		log.Warn().Int64("account_id", id).Int64("balance", a.Balance).Int64("ledger_sum", sum).Msg("Ledger drift detected")
	}
	return a, nil
}

// credit applies a positive movement. The caller holds the account lock.
func (s *AccountService) credit(ctx context.Context, id int64, kind model.TxKind, amount int64, desc string) (*Movement, error) {
	acc, err := s.Accounts.ApplyDelta(ctx, id, amount)
	if err != nil {
		return nil, translate(err)
	}

	p := &posting{
		Reference:   uuid.NewString(),
		AccountID:   id,
		Kind:        kind,
		Payout:      amount,
		Description: desc,
		Credited:    true,
		Balance:     acc.Balance,
	}
	if err := s.settle(context.WithoutCancel(ctx), movementLogger(p), p); err != nil {
		return nil, err
	}
	return p.movement(), nil
}
