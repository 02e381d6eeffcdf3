package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"casino-engine/internal/model"
	"casino-engine/internal/repository"
	"casino-engine/internal/service"
	"casino-engine/internal/service/mocks"
	"casino-engine/internal/types"
)

func newPromoFixture(codes ...model.PromoCode) (*fixture, *service.PromoService, *repository.MemoryPromoCatalog) {
	f := newFixture()
	catalog := repository.NewMemoryPromoCatalog(codes...)
	return f, service.NewPromoService(f.deps, catalog, repository.NewMemoryRedemptionGuard()), catalog
}

var bonus2025 = model.PromoCode{Code: "BONUS2025", Reward: 1000, UsesLeft: model.UnlimitedUses, Active: true}

func TestRedeemOncePerAccount(t *testing.T) {
	f, svc, _ := newPromoFixture(bonus2025)
	f.seed(1, 0, 50)
	ctx := context.Background()

	r, err := svc.Redeem(ctx, 1, "bonus2025")
	require.NoError(t, err)
	assert.Equal(t, "BONUS2025", r.Code)
	assert.Equal(t, int64(1000), r.Reward)
	assert.Equal(t, int64(1000), r.Balance)
	assert.NotEmpty(t, r.TransactionID)

	_, err = svc.Redeem(ctx, 1, "BONUS2025")
	assert.ErrorIs(t, err, service.ErrAlreadyRedeemed)
	assert.Equal(t, types.CodeAlreadyRedeemed, types.CodeOf(err))
	assert.Equal(t, int64(1000), f.balance(1))

	txs, _ := f.txs.ListByAccount(ctx, 1, 10)
	require.Len(t, txs, 1)
	assert.Equal(t, model.TxKindPromo, txs[0].Kind)
	assert.Equal(t, int64(1000), txs[0].Amount)
}

func TestRedeemInvalidCodes(t *testing.T) {
	f, svc, _ := newPromoFixture(
		bonus2025,
		model.PromoCode{Code: "OLD", Reward: 50, UsesLeft: model.UnlimitedUses, Active: false},
		model.PromoCode{Code: "GONE", Reward: 50, UsesLeft: 0, Active: true},
	)
	f.seed(1, 0, 50)

	for _, code := range []string{"", "   ", "NOPE", "OLD", "GONE"} {
		_, err := svc.Redeem(context.Background(), 1, code)
		assert.ErrorIs(t, err, service.ErrInvalidCode, "code %q", code)
	}
	assert.Zero(t, f.balance(1))
	assert.Zero(t, f.txs.Len())
}

func TestRedeemUnknownAccount(t *testing.T) {
	_, svc, _ := newPromoFixture(bonus2025)

	_, err := svc.Redeem(context.Background(), 99, "BONUS2025")
	assert.ErrorIs(t, err, service.ErrAccountNotFound)
}

func TestRedeemCappedCode(t *testing.T) {
	f, svc, catalog := newPromoFixture(model.PromoCode{Code: "FIRST", Reward: 200, UsesLeft: 1, Active: true})
	f.seed(1, 0, 50)
	f.seed(2, 0, 50)
	ctx := context.Background()

	_, err := svc.Redeem(ctx, 1, "FIRST")
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, 2, "FIRST")
	assert.ErrorIs(t, err, service.ErrInvalidCode)
	assert.Zero(t, f.balance(2))

	p, err := catalog.Get(ctx, "FIRST")
	require.NoError(t, err)
	assert.Zero(t, p.UsesLeft)
}

func TestRedeemConcurrentDuplicates(t *testing.T) {
	f, svc, _ := newPromoFixture(bonus2025)
	f.seed(1, 0, 50)

	const n = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		success  int
		rejected int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Redeem(context.Background(), 1, "BONUS2025")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				success++
			} else if errors.Is(err, service.ErrAlreadyRedeemed) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, n-1, rejected)
	assert.Equal(t, int64(1000), f.balance(1))
	assert.Equal(t, 1, f.txs.Len())
}

func TestRedeemCreditFailureReleasesClaim(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountStore(ctrl)
	accounts.EXPECT().Get(gomock.Any(), int64(1)).Return(&model.Account{ID: 1, Luck: 50}, nil).Times(2)
	accounts.EXPECT().ApplyDelta(gomock.Any(), int64(1), int64(200)).Return(nil, errors.New("timeout"))
	accounts.EXPECT().ApplyDelta(gomock.Any(), int64(1), int64(200)).Return(&model.Account{ID: 1, Balance: 200, Luck: 50}, nil)

	f := newFixture()
	deps := f.deps
	deps.Accounts = accounts
	catalog := repository.NewMemoryPromoCatalog(model.PromoCode{Code: "ONCE", Reward: 200, UsesLeft: 1, Active: true})
	svc := service.NewPromoService(deps, catalog, repository.NewMemoryRedemptionGuard())

	_, err := svc.Redeem(context.Background(), 1, "ONCE")
	assert.ErrorIs(t, err, service.ErrStorageUnavailable)
	assert.Equal(t, types.CodeStorageUnavailable, types.CodeOf(err))

	// Claim and use were handed back, so a retry succeeds
	r, err := svc.Redeem(context.Background(), 1, "ONCE")
	require.NoError(t, err)
	assert.Equal(t, int64(200), r.Balance)
}

func TestRedeemIdempotenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		codes := []string{"ALPHA", "BETA", "GAMMA"}
		f, svc, _ := newPromoFixture(
			model.PromoCode{Code: "ALPHA", Reward: 10, UsesLeft: model.UnlimitedUses, Active: true},
			model.PromoCode{Code: "BETA", Reward: 25, UsesLeft: model.UnlimitedUses, Active: true},
			model.PromoCode{Code: "GAMMA", Reward: 40, UsesLeft: model.UnlimitedUses, Active: true},
		)
		f.seed(1, 0, 50)
		f.seed(2, 0, 50)

		redeemed := map[[2]any]bool{}
		want := map[int64]int64{}
		rewards := map[string]int64{"ALPHA": 10, "BETA": 25, "GAMMA": 40}

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			account := rapid.Int64Range(1, 2).Draw(t, "account")
			code := rapid.SampledFrom(codes).Draw(t, "code")
			key := [2]any{account, code}

			_, err := svc.Redeem(context.Background(), account, code)
			if redeemed[key] {
				if !errors.Is(err, service.ErrAlreadyRedeemed) {
					t.Fatalf("second redemption of %s by %d: %v", code, account, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("first redemption of %s by %d: %v", code, account, err)
			}
			redeemed[key] = true
			want[account] += rewards[code]
		}

		for account, bal := range want {
			if got := f.balance(account); got != bal {
				t.Fatalf("account %d balance %d, want %d", account, got, bal)
			}
		}
	})
}

// A second engine instance that shares the balances also has to share the
// claims, otherwise the code pays out again.
func TestRedeemAcrossRestartWithSharedGuard(t *testing.T) {
	f := newFixture()
	f.seed(1, 1000, 50)
	catalog := repository.NewMemoryPromoCatalog(bonus2025)
	guard := repository.NewMemoryRedemptionGuard()
	ctx := context.Background()

	_, err := service.NewPromoService(f.deps, catalog, guard).Redeem(ctx, 1, "BONUS2025")
	require.NoError(t, err)

	_, err = service.NewPromoService(f.deps, catalog, guard).Redeem(ctx, 1, "BONUS2025")
	assert.ErrorIs(t, err, service.ErrAlreadyRedeemed)
	assert.Equal(t, int64(2000), f.balance(1))
}
