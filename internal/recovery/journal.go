// Package recovery keeps a durable journal of settlements that could not be
// completed after money already moved. The journal lives outside the
// primary database so it stays writable when that database is failing.
package recovery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"casino-engine/internal/model"
)

// ErrEntryNotFound is returned when updating an unknown entry.
var ErrEntryNotFound = errors.New("recovery entry not found")

const schema = `
	CREATE TABLE IF NOT EXISTS recovery_entries (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		account_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		game TEXT NOT NULL,
		bet INTEGER NOT NULL,
		payout INTEGER NOT NULL,
		credited INTEGER NOT NULL,
		logged INTEGER NOT NULL,
		reason TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_recovery_status ON recovery_entries(status, created_at);
`

// SQLiteJournal stores recovery entries in a local SQLite file.
type SQLiteJournal struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the journal at path.
func OpenSQLite(path string) (*SQLiteJournal, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=FULL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open recovery journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create recovery schema: %w", err)
	}
	return &SQLiteJournal{db: db}, nil
}

// Close closes the underlying database.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Record stores a new pending entry, assigning id and timestamps when unset.
func (j *SQLiteJournal) Record(ctx context.Context, e *model.RecoveryEntry) error {
	const query = `
		INSERT INTO recovery_entries
			(id, reference, account_id, kind, game, bet, payout, credited, logged, reason, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	prepare(e)
	_, err := j.db.ExecContext(ctx, query,
		e.ID, e.Reference, e.AccountID, string(e.Kind), string(e.Game), e.Bet, e.Payout,
		e.Credited, e.Logged, e.Reason, string(e.Status), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to record recovery entry: %w", err)
	}
	return nil
}

// Pending returns up to limit unresolved entries, oldest first.
func (j *SQLiteJournal) Pending(ctx context.Context, limit int) ([]*model.RecoveryEntry, error) {
	const query = `
		SELECT id, reference, account_id, kind, game, bet, payout, credited, logged, reason, status, created_at, updated_at
		FROM recovery_entries
		WHERE status = ?
		ORDER BY created_at ASC, rowid ASC
		LIMIT ?
	`

	rows, err := j.db.QueryContext(ctx, query, string(model.RecoveryPending), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recovery entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.RecoveryEntry
	for rows.Next() {
		var e model.RecoveryEntry
		var kind, game, status string
		err := rows.Scan(&e.ID, &e.Reference, &e.AccountID, &kind, &game, &e.Bet, &e.Payout,
			&e.Credited, &e.Logged, &e.Reason, &status, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recovery entry: %w", err)
		}
		e.Kind = model.TxKind(kind)
		e.Game = model.GameType(game)
		e.Status = model.RecoveryStatus(status)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recovery entries: %w", err)
	}
	return entries, nil
}

// Update persists the progress flags, reason and status of an entry.
func (j *SQLiteJournal) Update(ctx context.Context, e *model.RecoveryEntry) error {
	const query = `
		UPDATE recovery_entries
		SET credited = ?, logged = ?, reason = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	e.UpdatedAt = time.Now().UTC()
	result, err := j.db.ExecContext(ctx, query, e.Credited, e.Logged, e.Reason, string(e.Status), e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update recovery entry: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// MemoryJournal is an in-process journal for tests and the memory driver.
type MemoryJournal struct {
	mu      sync.Mutex
	entries []*model.RecoveryEntry
}

// NewMemoryJournal creates an empty journal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

// Record stores a copy of e.
func (j *MemoryJournal) Record(_ context.Context, e *model.RecoveryEntry) error {
	prepare(e)

	j.mu.Lock()
	defer j.mu.Unlock()
	stored := *e
	j.entries = append(j.entries, &stored)
	return nil
}

// Pending returns up to limit unresolved entries, oldest first.
func (j *MemoryJournal) Pending(_ context.Context, limit int) ([]*model.RecoveryEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	var out []*model.RecoveryEntry
	for _, e := range j.entries {
		if len(out) == limit {
			break
		}
		if e.Status == model.RecoveryPending {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}

// Update persists the progress flags, reason and status of an entry.
func (j *MemoryJournal) Update(_ context.Context, e *model.RecoveryEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, stored := range j.entries {
		if stored.ID == e.ID {
			e.UpdatedAt = time.Now().UTC()
			stored.Credited = e.Credited
			stored.Logged = e.Logged
			stored.Reason = e.Reason
			stored.Status = e.Status
			stored.UpdatedAt = e.UpdatedAt
			return nil
		}
	}
	return ErrEntryNotFound
}

// All returns copies of every entry in insertion order.
func (j *MemoryJournal) All() []model.RecoveryEntry {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]model.RecoveryEntry, len(j.entries))
	for i, e := range j.entries {
		out[i] = *e
	}
	return out
}

func prepare(e *model.RecoveryEntry) {
	now := time.Now().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = model.RecoveryPending
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}
