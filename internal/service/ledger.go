package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"casino-engine/internal/model"
	"casino-engine/internal/pkg/lock"
	"casino-engine/internal/pkg/metrics"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Accounts     AccountStore
	Transactions TransactionLog
	Journal      RecoveryJournal
	Locks        *lock.AccountLock
	Retry        RetryPolicy
	Metrics      *metrics.Metrics

	// LockTimeout bounds how long an operation waits behind another one on
	// the same account. Zero waits until ctx ends.
	LockTimeout time.Duration
}

// ledger sequences the credit and log steps of a posting and escalates to
// the recovery journal when they cannot be completed.
type ledger struct {
	Deps
}

func newLedger(d Deps) *ledger {
	if d.Locks == nil {
		d.Locks = lock.NewAccountLock()
	}
	if d.Retry == (RetryPolicy{}) {
		d.Retry = DefaultRetryPolicy()
	}
	return &ledger{Deps: d}
}

// lock serializes the caller with every other operation on the account.
func (l *ledger) lock(ctx context.Context, accountID int64) error {
	var err error
	if l.LockTimeout > 0 {
		err = l.Locks.LockWithTimeout(ctx, accountID, l.LockTimeout)
	} else {
		err = l.Locks.LockContext(ctx, accountID)
	}
	if errors.Is(err, lock.ErrLockTimeout) {
		return fmt.Errorf("%w: %w", ErrAccountBusy, err)
	}
	return err
}

// posting is one balance-affecting event after its debit (if any) applied.
// Payout is credited unless Credited is already set; the log record carries
// Payout - Bet.
type posting struct {
	Reference   string
	AccountID   int64
	Kind        model.TxKind
	Game        model.GameType
	Bet         int64
	Payout      int64
	Description string

	Credited      bool
	Balance       int64
	TransactionID string
}

// settle credits the payout and appends the log record, each with bounded
// retries. On exhaustion the posting is journaled and ErrFailedStorage
// returned.
func (l *ledger) settle(ctx context.Context, logger zerolog.Logger, p *posting) error {
	if p.Payout > 0 && !p.Credited {
		var acc *model.Account
		err := l.Retry.do(ctx, func() error {
			var err error
			acc, err = l.Accounts.ApplyDelta(ctx, p.AccountID, p.Payout)
			return translate(err)
		})
		if err != nil {
			return l.escalate(ctx, logger, p, false, fmt.Errorf("credit failed: %w", err))
		}
		p.Balance = acc.Balance
	}
	p.Credited = true

	tx := &model.Transaction{
		ID:        uuid.NewString(),
		AccountID: p.AccountID,
		Kind:      p.Kind,
		Amount:    p.Payout - p.Bet,
		Reference: &p.Reference,
	}
	if p.Description != "" {
		tx.Description = &p.Description
	}
	// An append that timed out may still have landed; replay reuses the id
	p.TransactionID = tx.ID
	err := l.Retry.do(ctx, func() error {
		return l.Transactions.Append(ctx, tx)
	})
	if err != nil {
		return l.escalate(ctx, logger, p, true, fmt.Errorf("log append failed: %w", err))
	}
	return nil
}

func (l *ledger) escalate(ctx context.Context, logger zerolog.Logger, p *posting, credited bool, cause error) error {
	entry := &model.RecoveryEntry{
		ID:        p.TransactionID,
		Reference: p.Reference,
		AccountID: p.AccountID,
		Kind:      p.Kind,
		Game:      p.Game,
		Bet:       p.Bet,
		Payout:    p.Payout,
		Credited:  credited || p.Payout == 0,
		Logged:    false,
		Reason:    cause.Error(),
	}

	if err := l.Journal.Record(ctx, entry); err != nil {
		logger.Error().
			Err(err).
			AnErr("cause", cause).
			Str("reference", p.Reference).
			Int64("account_id", p.AccountID).
			Str("kind", string(p.Kind)).
			Str("game", string(p.Game)).
			Int64("bet", p.Bet).
			Int64("payout", p.Payout).
			Bool("credited", entry.Credited).
			Msg("Owed settlement could not be journaled")
		l.Metrics.Recovery("journal_failed")
	} else {
		logger.Error().
			Err(cause).
			Str("recovery_id", entry.ID).
			Bool("credited", entry.Credited).
			Msg("Settlement incomplete, recorded for recovery")
		l.Metrics.Recovery("recorded")
	}

	return fmt.Errorf("%w: %s: %w", ErrFailedStorage, p.Reference, cause)
}

func (p *posting) movement() *Movement {
	return &Movement{
		AccountID:     p.AccountID,
		Kind:          p.Kind,
		Amount:        p.Payout - p.Bet,
		Balance:       p.Balance,
		TransactionID: p.TransactionID,
	}
}

func movementLogger(p *posting) zerolog.Logger {
	return log.With().
		Str("reference", p.Reference).
		Int64("account_id", p.AccountID).
		Str("kind", string(p.Kind)).
		Logger()
}
