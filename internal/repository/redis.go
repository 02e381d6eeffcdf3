package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"casino-engine/internal/model"
)

// RedisRedemptionGuard keeps one key per (code, account) redemption.
// SETNX makes the claim atomic across engine instances.
type RedisRedemptionGuard struct {
	client *redis.Client
	prefix string
}

// NewRedisRedemptionGuard creates a guard on client. Keys are written under
// "<prefix>:<CODE>:<account>".
func NewRedisRedemptionGuard(client *redis.Client, prefix string) *RedisRedemptionGuard {
	if prefix == "" {
		prefix = "promo"
	}
	return &RedisRedemptionGuard{client: client, prefix: prefix}
}

func (g *RedisRedemptionGuard) key(accountID int64, code string) string {
	return g.prefix + ":" + model.NormalizeCode(code) + ":" + strconv.FormatInt(accountID, 10)
}

// Claim reports false when accountID already redeemed code.
func (g *RedisRedemptionGuard) Claim(ctx context.Context, accountID int64, code string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(accountID, code), time.Now().UTC().Unix(), 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim promo code: %w", err)
	}
	return ok, nil
}

// Release removes a claim.
func (g *RedisRedemptionGuard) Release(ctx context.Context, accountID int64, code string) error {
	if err := g.client.Del(ctx, g.key(accountID, code)).Err(); err != nil {
		return fmt.Errorf("failed to release promo claim: %w", err)
	}
	return nil
}
