package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"casino-engine/internal/game"
	"casino-engine/internal/model"
	"casino-engine/internal/types"
)

// WagerRequest is a single bet placed by an account.
type WagerRequest struct {
	AccountID int64
	Game      model.GameType
	Bet       int64
	Pick      int
}

// SettledWager is the result of a completed wager. Balance is the balance
// after the payout credit.
type SettledWager struct {
	WagerID       string         `json:"wager_id"`
	AccountID     int64          `json:"account_id"`
	Game          model.GameType `json:"game"`
	Bet           int64          `json:"bet"`
	Luck          int            `json:"luck"`
	Outcome       *game.Outcome  `json:"outcome"`
	Net           int64          `json:"net"`
	Balance       int64          `json:"balance"`
	TransactionID string         `json:"transaction_id"`
	SettledAt     time.Time      `json:"settled_at"`
}

// Coordinator settles wagers: debit, outcome, credit and log, serialized
// per account.
type Coordinator struct {
	*ledger
	engine *game.Engine
}

// NewCoordinator creates a new Coordinator instance.
func NewCoordinator(deps Deps, engine *game.Engine) *Coordinator {
	return &Coordinator{
		ledger: newLedger(deps),
		engine: engine,
	}
}

// Engine returns the outcome engine used for settlement.
func (c *Coordinator) Engine() *game.Engine {
	return c.engine
}

// PlaceWager debits the bet, determines the outcome, credits any payout and
// appends exactly one transaction record carrying the net result.
//
// Rejections (invalid bet, unknown game, missing account, insufficient funds,
// corrupt luck) leave the balance untouched. Once the debit is applied the
// wager is carried to completion even if ctx is cancelled; if the credit or
// the log append cannot be completed the owed settlement is journaled and
// ErrFailedStorage returned.
func (c *Coordinator) PlaceWager(ctx context.Context, req WagerRequest) (*SettledWager, error) {
	start := time.Now()
	wagerID := uuid.NewString()
	logger := log.With().
		Str("wager_id", wagerID).
		Int64("account_id", req.AccountID).
		Str("game", string(req.Game)).
		Int64("bet", req.Bet).
		Logger()

	result, err := c.placeWager(ctx, logger, wagerID, req)
	if err != nil {
		if types.IsRejection(err) {
			logger.Debug().Err(err).Msg("Wager rejected")
		} else if !errors.Is(err, ErrFailedStorage) {
			logger.Error().Err(err).Msg("Wager failed")
		}
		c.Metrics.WagerRejected(string(types.CodeOf(err)))
		return nil, err
	}

	c.Metrics.WagerSettled(string(req.Game), result.Outcome.Won, req.Bet, result.Outcome.Payout, time.Since(start).Seconds())
	logger.Info().
		Bool("won", result.Outcome.Won).
		Int64("payout", result.Outcome.Payout).
		Int64("balance", result.Balance).
		Msg("Wager settled")
	return result, nil
}

func (c *Coordinator) placeWager(ctx context.Context, logger zerolog.Logger, wagerID string, req WagerRequest) (*SettledWager, error) {
	opts := game.Options{Pick: req.Pick}

	// Validate bet and game before touching the account
	if _, err := c.engine.Validate(req.Game, req.Bet, opts); err != nil {
		return nil, err
	}

	if err := c.lock(ctx, req.AccountID); err != nil {
		return nil, err
	}
	defer c.Locks.Unlock(req.AccountID)

	acc, err := c.Accounts.Get(ctx, req.AccountID)
	if err != nil {
		return nil, translate(err)
	}
	if !acc.LuckValid() {
		return nil, fmt.Errorf("%w: luck %d", ErrCorruptAccountState, acc.Luck)
	}
	if acc.Balance < req.Bet {
		return nil, ErrInsufficientFunds
	}

	// Debit the bet; the store refuses a negative balance
	debited, err := c.Accounts.ApplyDelta(ctx, req.AccountID, -req.Bet)
	if err != nil {
		return nil, translate(err)
	}

	// Money has moved: finish the wager regardless of the caller
	ctx = context.WithoutCancel(ctx)

	p := &posting{
		Reference: wagerID,
		AccountID: req.AccountID,
		Game:      req.Game,
		Bet:       req.Bet,
		Balance:   debited.Balance,
	}

	outcome, err := c.engine.Determine(req.Game, req.Bet, debited.Luck, opts)
	if err != nil {
		// Void the wager by paying the bet back
		p.Kind = model.TxKindGameWin
		p.Payout = req.Bet
		p.Description = "void: " + err.Error()
		if serr := c.settle(ctx, logger, p); serr != nil {
			return nil, serr
		}
		if errors.Is(err, game.ErrCorruptLuck) {
			return nil, fmt.Errorf("%w: %w", ErrCorruptAccountState, err)
		}
		return nil, err
	}

	p.Payout = outcome.Payout
	p.Kind = model.GameKind(outcome.Payout - req.Bet)
	if err := c.settle(ctx, logger, p); err != nil {
		return nil, err
	}

	return &SettledWager{
		WagerID:       wagerID,
		AccountID:     req.AccountID,
		Game:          req.Game,
		Bet:           req.Bet,
		Luck:          debited.Luck,
		Outcome:       outcome,
		Net:           outcome.Payout - req.Bet,
		Balance:       p.Balance,
		TransactionID: p.TransactionID,
		SettledAt:     time.Now().UTC(),
	}, nil
}
