// Package repository provides the account store, transaction log and promo
// persistence used by the services, backed by PostgreSQL, Redis or memory.
package repository

import "errors"

// Common errors for repository operations.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPromoNotFound     = errors.New("promo code not found")
	ErrPromoExhausted    = errors.New("promo code has no uses left")
	ErrInvalidKind       = errors.New("unknown transaction kind")
)
