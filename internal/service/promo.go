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

// Redemption is the result of a successful promo redemption.
type Redemption struct {
	AccountID     int64  `json:"account_id"`
	Code          string `json:"code"`
	Reward        int64  `json:"reward"`
	Balance       int64  `json:"balance"`
	TransactionID string `json:"transaction_id"`
}

// PromoService redeems promo codes, at most once per account and code.
type PromoService struct {
	*ledger
	catalog PromoCatalog
	guard   RedemptionGuard
}

// NewPromoService creates a new PromoService instance.
func NewPromoService(deps Deps, catalog PromoCatalog, guard RedemptionGuard) *PromoService {
	return &PromoService{
		ledger:  newLedger(deps),
		catalog: catalog,
		guard:   guard,
	}
}

// Redeem credits the code's reward and appends a promo record. A second
// redemption of the same code by the same account returns
// ErrAlreadyRedeemed and leaves the balance unchanged.
func (s *PromoService) Redeem(ctx context.Context, accountID int64, code string) (*Redemption, error) {
	code = model.NormalizeCode(code)
	logger := log.With().Int64("account_id", accountID).Str("code", code).Logger()

	result, err := s.redeem(ctx, accountID, code)
	switch {
	case err == nil:
		s.Metrics.Redemption("redeemed")
		logger.Info().Int64("reward", result.Reward).Int64("balance", result.Balance).Msg("Promo code redeemed")
	case errors.Is(err, ErrAlreadyRedeemed):
		s.Metrics.Redemption("already_redeemed")
		logger.Debug().Msg("Promo code already redeemed")
	case errors.Is(err, ErrInvalidCode):
		s.Metrics.Redemption("invalid")
		logger.Debug().Msg("Promo code invalid")
	default:
		s.Metrics.Redemption("failed")
		logger.Error().Err(err).Msg("Promo redemption failed")
	}
	return result, err
}

func (s *PromoService) redeem(ctx context.Context, accountID int64, code string) (*Redemption, error) {
	if code == "" {
		return nil, ErrInvalidCode
	}

	if err := s.lock(ctx, accountID); err != nil {
		return nil, err
	}
	defer s.Locks.Unlock(accountID)

	promo, err := s.catalog.Get(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, translate(err)
	}
	if !promo.Redeemable() {
		return nil, ErrInvalidCode
	}

	if _, err := s.Accounts.Get(ctx, accountID); err != nil {
		return nil, translate(err)
	}

	// Claim the (account, code) pair before any money moves
	claimed, err := s.guard.Claim(ctx, accountID, code)
	if err != nil {
		return nil, translate(err)
	}
	if !claimed {
		return nil, ErrAlreadyRedeemed
	}

	if err := s.catalog.ConsumeUse(ctx, code); err != nil {
		s.release(ctx, accountID, code, false)
		if errors.Is(err, repository.ErrPromoExhausted) {
			return nil, ErrInvalidCode
		}
		return nil, translate(err)
	}

	acc, err := s.Accounts.ApplyDelta(ctx, accountID, promo.Reward)
	if err != nil {
		s.release(ctx, accountID, code, true)
		return nil, translate(err)
	}

	// Reward is credited: the record must be written or journaled
	ctx = context.WithoutCancel(ctx)
	p := &posting{
		Reference:   uuid.NewString(),
		AccountID:   accountID,
		Kind:        model.TxKindPromo,
		Payout:      promo.Reward,
		Description: fmt.Sprintf("promo code %s", code),
		Credited:    true,
		Balance:     acc.Balance,
	}
	logger := log.With().Int64("account_id", accountID).Str("code", code).Logger()
	if err := s.settle(ctx, logger, p); err != nil {
		return nil, err
	}

	return &Redemption{
		AccountID:     accountID,
		Code:          code,
		Reward:        promo.Reward,
		Balance:       p.Balance,
		TransactionID: p.TransactionID,
	}, nil
}

// release undoes a claim (and a consumed use) after a failed credit.
func (s *PromoService) release(ctx context.Context, accountID int64, code string, restoreUse bool) {
	ctx = context.WithoutCancel(ctx)
	if err := s.guard.Release(ctx, accountID, code); err != nil {
		log.Error().Err(err).Int64("account_id", accountID).Str("code", code).Msg("Failed to release promo claim")
	}
	if !restoreUse {
		return
	}
	if err := s.catalog.RestoreUse(ctx, code); err != nil {
		log.Error().Err(err).Str("code", code).Msg("Failed to restore promo use")
	}
}
