package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"casino-engine/internal/game"
	"casino-engine/internal/game/slot"
	"casino-engine/internal/model"
	"casino-engine/internal/recovery"
	"casino-engine/internal/service"
	"casino-engine/internal/service/mocks"
	"casino-engine/internal/types"
)

func TestPlaceWagerFixedDraw(t *testing.T) {
	f := newFixture()
	f.seed(1, 1000, 50)
	c := service.NewCoordinator(f.deps, newEngine(game.FixedSource(0.3)))

	res, err := c.PlaceWager(context.Background(), service.WagerRequest{
		AccountID: 1,
		Game:      model.GameSlots,
		Bet:       100,
	})
	require.NoError(t, err)

	assert.True(t, res.Outcome.Won)
	assert.Equal(t, slot.CategoryTripleOther, res.Outcome.Category)
	assert.Equal(t, int64(300), res.Outcome.Payout)
	assert.Equal(t, int64(200), res.Net)
	assert.Equal(t, int64(1200), res.Balance)
	assert.Equal(t, 50, res.Luck)
	assert.Equal(t, int64(1200), f.balance(1))

	txs, err := f.txs.ListByAccount(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, res.TransactionID, txs[0].ID)
	assert.Equal(t, model.TxKindGameWin, txs[0].Kind)
	assert.Equal(t, int64(200), txs[0].Amount)
	require.NotNil(t, txs[0].Reference)
	assert.Equal(t, res.WagerID, *txs[0].Reference)
}

func TestPlaceWagerLoss(t *testing.T) {
	f := newFixture()
	f.seed(1, 1000, 0)
	c := service.NewCoordinator(f.deps, newEngine(nil))

	res, err := c.PlaceWager(context.Background(), service.WagerRequest{AccountID: 1, Game: model.GameCups, Bet: 100, Pick: 1})
	require.NoError(t, err)

	assert.False(t, res.Outcome.Won)
	assert.Zero(t, res.Outcome.Payout)
	assert.Equal(t, int64(-100), res.Net)
	assert.Equal(t, int64(900), f.balance(1))

	txs, _ := f.txs.ListByAccount(context.Background(), 1, 10)
	require.Len(t, txs, 1)
	assert.Equal(t, model.TxKindGameLoss, txs[0].Kind)
	assert.Equal(t, int64(-100), txs[0].Amount)
}

func TestPlaceWagerAccountBusy(t *testing.T) {
	f := newFixture()
	f.seed(1, 1000, 50)
	deps := f.deps
	deps.LockTimeout = 10 * time.Millisecond
	c := service.NewCoordinator(deps, newEngine(nil))

	ctx := context.Background()
	require.NoError(t, deps.Locks.LockContext(ctx, 1))
	defer deps.Locks.Unlock(1)

	_, err := c.PlaceWager(ctx, service.WagerRequest{AccountID: 1, Game: model.GameWheel, Bet: 100})
	require.ErrorIs(t, err, service.ErrAccountBusy)
	assert.Equal(t, types.CodeStorageUnavailable, types.CodeOf(err))
	assert.Equal(t, int64(1000), f.balance(1))
	assert.Zero(t, f.txs.Len())
}

func TestPlaceWagerRejections(t *testing.T) {
	tests := []struct {
		name string
		req  service.WagerRequest
		luck int
		want types.ErrorCode
	}{
		{"zero bet", service.WagerRequest{AccountID: 1, Game: model.GameSlots, Bet: 0}, 50, types.CodeInvalidBet},
		{"negative bet", service.WagerRequest{AccountID: 1, Game: model.GameSlots, Bet: -5}, 50, types.CodeInvalidBet},
		{"unknown game", service.WagerRequest{AccountID: 1, Game: "POKER", Bet: 10}, 50, types.CodeUnknownGame},
		{"bad cup", service.WagerRequest{AccountID: 1, Game: model.GameCups, Bet: 10, Pick: 3}, 50, types.CodeInvalidBet},
		{"missing account", service.WagerRequest{AccountID: 2, Game: model.GameWheel, Bet: 10}, 50, types.CodeAccountNotFound},
		{"insufficient funds", service.WagerRequest{AccountID: 1, Game: model.GameWheel, Bet: 501}, 50, types.CodeInsufficientFunds},
		{"corrupt luck", service.WagerRequest{AccountID: 1, Game: model.GameWheel, Bet: 10}, 150, types.CodeCorruptAccountState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seed(1, 500, tt.luck)
			c := service.NewCoordinator(f.deps, newEngine(nil))

			res, err := c.PlaceWager(context.Background(), tt.req)
			assert.Nil(t, res)
			assert.Equal(t, tt.want, types.CodeOf(err))
			assert.Equal(t, int64(500), f.balance(1))
			assert.Zero(t, f.txs.Len())
			assert.Empty(t, f.journal.All())
		})
	}
}

func TestPlaceWagerLuckChangeApplies(t *testing.T) {
	f := newFixture()
	f.seed(1, 1000, 0)
	c := service.NewCoordinator(f.deps, newEngine(nil))
	accounts := service.NewAccountService(f.deps, service.AccountOptions{DefaultLuck: 50})

	_, err := accounts.SetLuck(context.Background(), 1, 100)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		res, err := c.PlaceWager(context.Background(), service.WagerRequest{AccountID: 1, Game: model.GameWheel, Bet: 10})
		require.NoError(t, err)
		assert.True(t, res.Outcome.Won)
		assert.Equal(t, 100, res.Luck)
	}
}

// Two concurrent bets of 50 against a balance of 80: exactly one is debited.
func TestConcurrentWagersSerialize(t *testing.T) {
	for round := 0; round < 50; round++ {
		f := newFixture()
		f.seed(1, 80, 0)
		c := service.NewCoordinator(f.deps, newEngine(nil))

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = c.PlaceWager(context.Background(), service.WagerRequest{AccountID: 1, Game: model.GameSlots, Bet: 50})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, service.ErrInsufficientFunds)
		}
		require.Equal(t, 1, succeeded)
		require.Equal(t, int64(30), f.balance(1))
		require.Equal(t, 1, f.txs.Len())
	}
}

// Whatever mix of wagers runs, balance never goes negative and the opening
// balance plus the logged amounts always equals the stored balance.
func TestLedgerConservationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture()
		opening := rapid.Int64Range(0, 10_000).Draw(t, "opening")
		luck := rapid.IntRange(0, 100).Draw(t, "luck")
		f.seed(1, opening, luck)
		c := service.NewCoordinator(f.deps, newEngine(game.NewSeededSource(rapid.Uint64().Draw(t, "seed"))))

		n := rapid.IntRange(1, 30).Draw(t, "wagers")
		for i := 0; i < n; i++ {
			req := service.WagerRequest{
				AccountID: 1,
				Game:      rapid.SampledFrom([]model.GameType{model.GameSlots, model.GameWheel, model.GameCups}).Draw(t, "game"),
				Bet:       rapid.Int64Range(-10, 2_000).Draw(t, "bet"),
				Pick:      rapid.IntRange(0, 2).Draw(t, "pick"),
			}
			before := f.balance(1)
			res, err := c.PlaceWager(context.Background(), req)
			after := f.balance(1)

			if after < 0 {
				t.Fatalf("balance went negative: %d", after)
			}
			if err != nil {
				if !types.IsRejection(err) {
					t.Fatalf("unexpected error: %v", err)
				}
				if after != before {
					t.Fatalf("rejected wager changed balance %d -> %d", before, after)
				}
				continue
			}
			if after != before-req.Bet+res.Outcome.Payout {
				t.Fatalf("balance %d, want %d - %d + %d", after, before, req.Bet, res.Outcome.Payout)
			}
		}

		if got := opening + f.logSum(1); got != f.balance(1) {
			t.Fatalf("opening %d + log %d != balance %d", opening, f.logSum(1), f.balance(1))
		}
	})
}

func TestPlaceWagerCreditFailureIsJournaled(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountStore(ctrl)
	txs := mocks.NewMockTransactionLog(ctrl)
	journal := recovery.NewMemoryJournal()

	accounts.EXPECT().Get(gomock.Any(), int64(7)).Return(&model.Account{ID: 7, Balance: 1000, Luck: 100}, nil)
	accounts.EXPECT().ApplyDelta(gomock.Any(), int64(7), int64(-100)).Return(&model.Account{ID: 7, Balance: 900, Luck: 100}, nil)
	accounts.EXPECT().ApplyDelta(gomock.Any(), int64(7), int64(300)).
		Return(nil, errors.New("connection reset")).
		Times(int(fastRetry.MaxRetries) + 1)

	c := service.NewCoordinator(service.Deps{
		Accounts:     accounts,
		Transactions: txs,
		Journal:      journal,
		Retry:        fastRetry,
	}, newEngine(game.FixedSource(0.3)))

	res, err := c.PlaceWager(context.Background(), service.WagerRequest{AccountID: 7, Game: model.GameSlots, Bet: 100})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, service.ErrFailedStorage)
	assert.Equal(t, types.CodeFailedStorage, types.CodeOf(err))

	entries := journal.All()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.NotEmpty(t, e.Reference)
	assert.Equal(t, int64(7), e.AccountID)
	assert.Equal(t, model.GameSlots, e.Game)
	assert.Equal(t, model.TxKindGameWin, e.Kind)
	assert.Equal(t, int64(100), e.Bet)
	assert.Equal(t, int64(300), e.Payout)
	assert.False(t, e.Credited)
	assert.False(t, e.Logged)
	assert.Equal(t, model.RecoveryPending, e.Status)
	assert.Contains(t, e.Reason, "connection reset")
}

func TestPlaceWagerLogFailureIsJournaled(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture()
	f.seed(1, 1000, 0)
	txs := mocks.NewMockTransactionLog(ctrl)
	txs.EXPECT().Append(gomock.Any(), gomock.Any()).
		Return(errors.New("disk full")).
		Times(int(fastRetry.MaxRetries) + 1)

	deps := f.deps
	deps.Transactions = txs
	c := service.NewCoordinator(deps, newEngine(nil))

	_, err := c.PlaceWager(context.Background(), service.WagerRequest{AccountID: 1, Game: model.GameWheel, Bet: 100})
	assert.ErrorIs(t, err, service.ErrFailedStorage)
	assert.Equal(t, int64(900), f.balance(1))

	entries := f.journal.All()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Credited)
	assert.False(t, entries[0].Logged)
	assert.Equal(t, int64(-100), entries[0].Net())
	assert.Equal(t, model.TxKindGameLoss, entries[0].Kind)
}

func TestPlaceWagerJournalFailureStillFailsStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture()
	f.seed(1, 1000, 0)

	txs := mocks.NewMockTransactionLog(ctrl)
	txs.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).AnyTimes()
	journal := mocks.NewMockRecoveryJournal(ctrl)
	journal.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("journal unavailable"))

	deps := f.deps
	deps.Transactions = txs
	deps.Journal = journal
	c := service.NewCoordinator(deps, newEngine(nil))

	_, err := c.PlaceWager(context.Background(), service.WagerRequest{AccountID: 1, Game: model.GameCups, Bet: 40})
	assert.ErrorIs(t, err, service.ErrFailedStorage)
	assert.Equal(t, int64(960), f.balance(1))
}

func TestPlaceWagerCompletesAfterCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx, cancel := context.WithCancel(context.Background())

	accounts := mocks.NewMockAccountStore(ctrl)
	accounts.EXPECT().Get(gomock.Any(), int64(3)).Return(&model.Account{ID: 3, Balance: 500, Luck: 100}, nil)
	accounts.EXPECT().ApplyDelta(gomock.Any(), int64(3), int64(-100)).
		DoAndReturn(func(context.Context, int64, int64) (*model.Account, error) {
			// Caller goes away right after the debit
			cancel()
			return &model.Account{ID: 3, Balance: 400, Luck: 100}, nil
		})
	accounts.EXPECT().ApplyDelta(gomock.Any(), int64(3), int64(300)).
		DoAndReturn(func(ctx context.Context, _ int64, _ int64) (*model.Account, error) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return &model.Account{ID: 3, Balance: 700, Luck: 100}, nil
		})

	f := newFixture()
	deps := f.deps
	deps.Accounts = accounts
	c := service.NewCoordinator(deps, newEngine(game.FixedSource(0.3)))

	res, err := c.PlaceWager(ctx, service.WagerRequest{AccountID: 3, Game: model.GameSlots, Bet: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(700), res.Balance)
	assert.Equal(t, 1, f.txs.Len())
}
