package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"casino-engine/internal/model"
)

// TransactionRepository is the PostgreSQL append-only transaction log.
// Rows are never updated or deleted; seq preserves insertion order.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository instance.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Append inserts tx, assigning its id and timestamp when unset. Appending a
// record whose id is already stored is a no-op, so a retried append whose
// first attempt reached the database does not duplicate the entry. Records
// with an unknown kind are refused with ErrInvalidKind.
func (r *TransactionRepository) Append(ctx context.Context, tx *model.Transaction) error {
	const query = `
		INSERT INTO transactions (id, account_id, kind, amount, reference, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if err := stamp(tx); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, query,
		tx.ID, tx.AccountID, string(tx.Kind), tx.Amount, tx.Reference, tx.Description, tx.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "transactions_id_key" {
			return nil
		}
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

// ListByAccount returns up to limit records for an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]*model.Transaction, error) {
	const query = `
		SELECT id, account_id, kind, amount, reference, description, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY seq DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var kind string
		err := rows.Scan(
			&tx.ID,
			&tx.AccountID,
			&kind,
			&tx.Amount,
			&tx.Reference,
			&tx.Description,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Kind = model.TxKind(kind)
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// SumByAccount returns the sum of all logged amounts for an account, used to
// audit the log against the stored balance.
func (r *TransactionRepository) SumByAccount(ctx context.Context, accountID int64) (int64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE account_id = $1`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, nil
}

// stamp checks the kind and fills in the id and timestamp of a record about
// to be appended.
func stamp(tx *model.Transaction) error {
	if !tx.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, tx.Kind)
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	return nil
}
