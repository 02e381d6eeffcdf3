// Package service implements the wager coordinator, promo redemption,
// account operations and recovery replay on top of the storage ports.
package service

import (
	"context"
	"errors"
	"fmt"

	"casino-engine/internal/game"
	"casino-engine/internal/repository"
	"casino-engine/internal/types"
)

// Boundary errors. Every error a service returns carries one of these (or a
// game package error) in its chain.
var (
	ErrInvalidBet          = game.ErrInvalidBet
	ErrInvalidAmount       = types.New(types.CodeInvalidAmount, "amount must be positive")
	ErrInvalidLuck         = types.New(types.CodeInvalidAmount, "luck must be between 0 and 100")
	ErrInsufficientFunds   = types.New(types.CodeInsufficientFunds, "insufficient funds")
	ErrAccountNotFound     = types.New(types.CodeAccountNotFound, "account not found")
	ErrCorruptAccountState = types.New(types.CodeCorruptAccountState, "account state is corrupt")
	ErrInvalidCode         = types.New(types.CodeInvalidCode, "promo code is invalid")
	ErrAlreadyRedeemed     = types.New(types.CodeAlreadyRedeemed, "promo code already redeemed")
	ErrFailedStorage       = types.New(types.CodeFailedStorage, "settlement could not be completed and was recorded for recovery")
	ErrStorageUnavailable  = types.New(types.CodeStorageUnavailable, "storage is temporarily unavailable")
	ErrAccountBusy         = types.New(types.CodeStorageUnavailable, "account is busy, try again")
)

// translate maps repository errors onto boundary errors. Anything it does
// not recognise is a storage failure; the cause stays in the chain for logs.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, repository.ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		var typed *types.Error
		if errors.As(err, &typed) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
}
