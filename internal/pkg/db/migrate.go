package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "accounts table",
		sql: `
			CREATE TABLE IF NOT EXISTS accounts (
				id BIGINT PRIMARY KEY,
				username VARCHAR(255) NOT NULL DEFAULT '',
				balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
				luck INTEGER NOT NULL DEFAULT 50,
				referred_by BIGINT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
		`,
	},
	{
		name: "transactions table",
		sql: `
			CREATE TABLE IF NOT EXISTS transactions (
				seq BIGSERIAL PRIMARY KEY,
				id UUID NOT NULL UNIQUE,
				account_id BIGINT NOT NULL REFERENCES accounts(id),
				kind VARCHAR(32) NOT NULL,
				amount BIGINT NOT NULL,
				reference TEXT,
				description TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_transactions_account_seq ON transactions(account_id, seq DESC);
		`,
	},
	{
		name: "promo tables",
		sql: `
			CREATE TABLE IF NOT EXISTS promo_codes (
				code VARCHAR(64) PRIMARY KEY,
				reward_amount BIGINT NOT NULL CHECK (reward_amount > 0),
				uses_left INTEGER NOT NULL DEFAULT -1,
				is_active BOOLEAN NOT NULL DEFAULT TRUE
			);
			CREATE TABLE IF NOT EXISTS promo_redemptions (
				account_id BIGINT NOT NULL REFERENCES accounts(id),
				code VARCHAR(64) NOT NULL,
				redeemed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				PRIMARY KEY (account_id, code)
			);
		`,
	},
}

// Migrate creates the schema if it does not exist. It is safe to run on
// every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Msg("Running database migrations...")

	for i, m := range migrations {
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", i+1, m.name, err)
		}
		log.Info().Int("step", i+1).Str("name", m.name).Msg("Migration applied")
	}
	return nil
}
