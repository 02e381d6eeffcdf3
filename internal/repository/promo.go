package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"casino-engine/internal/model"
)

// PromoRepository is the PostgreSQL promo catalog and redemption guard.
type PromoRepository struct {
	pool *pgxpool.Pool
}

// NewPromoRepository creates a new PromoRepository instance.
func NewPromoRepository(pool *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{pool: pool}
}

// Upsert creates or replaces a catalog entry.
func (r *PromoRepository) Upsert(ctx context.Context, p *model.PromoCode) error {
	const query = `
		INSERT INTO promo_codes (code, reward_amount, uses_left, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code)
		DO UPDATE SET reward_amount = $2, uses_left = $3, is_active = $4
	`
	_, err := r.pool.Exec(ctx, query, model.NormalizeCode(p.Code), p.Reward, p.UsesLeft, p.Active)
	if err != nil {
		return fmt.Errorf("failed to upsert promo code: %w", err)
	}
	return nil
}

// Get looks a code up case-insensitively.
func (r *PromoRepository) Get(ctx context.Context, code string) (*model.PromoCode, error) {
	const query = `
		SELECT code, reward_amount, uses_left, is_active
		FROM promo_codes
		WHERE code = $1
	`

	var p model.PromoCode
	err := r.pool.QueryRow(ctx, query, model.NormalizeCode(code)).Scan(&p.Code, &p.Reward, &p.UsesLeft, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return &p, nil
}

// ConsumeUse takes one use from a capped code. Unlimited codes are left as is.
// Returns ErrPromoExhausted when the code is inactive or has no uses left.
func (r *PromoRepository) ConsumeUse(ctx context.Context, code string) error {
	const query = `
		UPDATE promo_codes
		SET uses_left = CASE WHEN uses_left = -1 THEN -1 ELSE uses_left - 1 END
		WHERE code = $1 AND is_active AND (uses_left = -1 OR uses_left > 0)
	`
	result, err := r.pool.Exec(ctx, query, model.NormalizeCode(code))
	if err != nil {
		return fmt.Errorf("failed to consume promo use: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPromoExhausted
	}
	return nil
}

// RestoreUse gives back a use taken by ConsumeUse.
func (r *PromoRepository) RestoreUse(ctx context.Context, code string) error {
	const query = `
		UPDATE promo_codes
		SET uses_left = uses_left + 1
		WHERE code = $1 AND uses_left <> -1
	`
	if _, err := r.pool.Exec(ctx, query, model.NormalizeCode(code)); err != nil {
		return fmt.Errorf("failed to restore promo use: %w", err)
	}
	return nil
}

// Claim records that accountID redeemed code. It reports false when the
// pair was already recorded; the primary key makes this atomic.
func (r *PromoRepository) Claim(ctx context.Context, accountID int64, code string) (bool, error) {
	const query = `
		INSERT INTO promo_redemptions (account_id, code, redeemed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (account_id, code) DO NOTHING
	`
	result, err := r.pool.Exec(ctx, query, accountID, model.NormalizeCode(code))
	if err != nil {
		return false, fmt.Errorf("failed to claim promo code: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

// Release removes a claim so a redemption that failed to credit can be retried.
func (r *PromoRepository) Release(ctx context.Context, accountID int64, code string) error {
	const query = `DELETE FROM promo_redemptions WHERE account_id = $1 AND code = $2`

	if _, err := r.pool.Exec(ctx, query, accountID, model.NormalizeCode(code)); err != nil {
		return fmt.Errorf("failed to release promo claim: %w", err)
	}
	return nil
}
