package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"casino-engine/internal/model"
)

const accountColumns = `id, username, balance, luck, referred_by, created_at, updated_at`

// AccountRepository is the PostgreSQL account store.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository instance.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Balance,
		&a.Luck,
		&a.ReferredBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new account with a zero balance.
// Returns ErrAccountExists if the id is taken.
func (r *AccountRepository) Create(ctx context.Context, acc *model.Account) (*model.Account, error) {
	const query = `
		INSERT INTO accounts (id, username, balance, luck, referred_by, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $4, NOW(), NOW())
		RETURNING ` + accountColumns

	created, err := scanAccount(r.pool.QueryRow(ctx, query, acc.ID, acc.Username, acc.Luck, acc.ReferredBy))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return created, nil
}

// Get retrieves an account by id.
// Returns ErrAccountNotFound if the account does not exist.
func (r *AccountRepository) Get(ctx context.Context, id int64) (*model.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acc, nil
}

// ApplyDelta atomically adds delta to the balance. The guard in the WHERE
// clause makes the row update a compare-and-swap against going negative:
// on ErrInsufficientFunds nothing is written.
func (r *AccountRepository) ApplyDelta(ctx context.Context, id int64, delta int64) (*model.Account, error) {
	const query = `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1 AND balance + $2 >= 0
		RETURNING ` + accountColumns

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, id, delta))
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	exists, err := r.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrAccountNotFound
	}
	return nil, ErrInsufficientFunds
}

// SetLuck overwrites the account's luck.
func (r *AccountRepository) SetLuck(ctx context.Context, id int64, luck int) (*model.Account, error) {
	const query = `
		UPDATE accounts
		SET luck = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, id, luck))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to set luck: %w", err)
	}
	return acc, nil
}

// Exists checks if an account with the given id exists.
func (r *AccountRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}
