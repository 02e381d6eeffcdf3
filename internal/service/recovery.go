package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"casino-engine/internal/model"
)

const (
	// replayBatch bounds how many journal entries one Replay pass handles.
	replayBatch = 100

	defaultReplayInterval = time.Minute
)

// RecoveryService replays owed settlements from the recovery journal.
type RecoveryService struct {
	*ledger
}

// NewRecoveryService creates a new RecoveryService instance.
func NewRecoveryService(deps Deps) *RecoveryService {
	return &RecoveryService{ledger: newLedger(deps)}
}

// Replay applies the missing steps of every pending entry: the payout
// credit when it was never applied, then the transaction record. Entries
// that still fail stay pending for the next pass. It returns how many
// entries were resolved.
func (s *RecoveryService) Replay(ctx context.Context) (int, error) {
	entries, err := s.Journal.Pending(ctx, replayBatch)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending recovery entries: %w", err)
	}

	var (
		resolved int
		errs     []error
	)
	for _, e := range entries {
		if err := s.replayEntry(ctx, e); err != nil {
			errs = append(errs, fmt.Errorf("entry %s: %w", e.ID, err))
			continue
		}
		resolved++
	}

	if resolved > 0 || len(errs) > 0 {
		log.Info().Int("resolved", resolved).Int("failed", len(errs)).Msg("Recovery replay finished")
	}
	return resolved, errors.Join(errs...)
}

func (s *RecoveryService) replayEntry(ctx context.Context, e *model.RecoveryEntry) error {
	logger := log.With().
		Str("recovery_id", e.ID).
		Str("reference", e.Reference).
		Int64("account_id", e.AccountID).
		Logger()

	if err := s.lock(ctx, e.AccountID); err != nil {
		return err
	}
	defer s.Locks.Unlock(e.AccountID)

	if !e.Credited && e.Payout > 0 {
		if _, err := s.Accounts.ApplyDelta(ctx, e.AccountID, e.Payout); err != nil {
			return s.keepPending(ctx, e, fmt.Errorf("credit failed: %w", err))
		}
		e.Credited = true
		// Persist progress so a later failure never credits twice
		if err := s.Journal.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to persist credit progress: %w", err)
		}
	}

	if !e.Logged {
		// Records are keyed by the entry id, so a retried append is a no-op
		reference := e.Reference
		tx := &model.Transaction{
			ID:        e.ID,
			AccountID: e.AccountID,
			Kind:      e.Kind,
			Amount:    e.Net(),
			Reference: &reference,
		}
		if err := s.Transactions.Append(ctx, tx); err != nil {
			return s.keepPending(ctx, e, fmt.Errorf("log append failed: %w", err))
		}
		e.Logged = true
	}

	e.Status = model.RecoveryResolved
	if err := s.Journal.Update(ctx, e); err != nil {
		return fmt.Errorf("failed to resolve recovery entry: %w", err)
	}

	s.Metrics.Recovery("replayed")
	logger.Info().Int64("payout", e.Payout).Int64("net", e.Net()).Msg("Owed settlement replayed")
	return nil
}

func (s *RecoveryService) keepPending(ctx context.Context, e *model.RecoveryEntry, cause error) error {
	e.Reason = cause.Error()
	if err := s.Journal.Update(ctx, e); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// Run replays the journal every interval until ctx is done. A non-positive
// interval falls back to one minute.
func (s *RecoveryService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		log.Warn().Dur("interval", interval).Msg("Invalid replay interval, using default")
		interval = defaultReplayInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Replay(ctx); err != nil {
				log.Error().Err(err).Msg("Recovery replay failed")
			}
		}
	}
}
