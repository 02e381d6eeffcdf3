package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"casino-engine/internal/repository"
)

// RetryPolicy bounds the retries of the credit and log steps that follow a
// successful debit.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy retries five times starting at 50ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      5,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)
}

// do runs op until it succeeds, returns a permanent error, or the retry
// budget is spent. Account-not-found, insufficient funds and malformed
// records are permanent.
func (p RetryPolicy) do(ctx context.Context, op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrInsufficientFunds) ||
			errors.Is(err, repository.ErrInvalidKind) {
			return backoff.Permanent(err)
		}
		return err
	}, p.backOff(ctx))
}
