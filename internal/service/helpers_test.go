package service_test

import (
	"context"
	"time"

	"casino-engine/internal/game"
	"casino-engine/internal/game/cups"
	"casino-engine/internal/game/slot"
	"casino-engine/internal/game/wheel"
	"casino-engine/internal/model"
	"casino-engine/internal/pkg/lock"
	"casino-engine/internal/recovery"
	"casino-engine/internal/repository"
	"casino-engine/internal/service"
)

// fastRetry keeps failure-path tests quick: three attempts, 1ms apart.
var fastRetry = service.RetryPolicy{
	MaxRetries:      2,
	InitialInterval: time.Millisecond,
	MaxInterval:     time.Millisecond,
}

type fixture struct {
	accounts *repository.MemoryAccountStore
	txs      *repository.MemoryTransactionLog
	journal  *recovery.MemoryJournal
	deps     service.Deps
}

func newFixture() *fixture {
	f := &fixture{
		accounts: repository.NewMemoryAccountStore(),
		txs:      repository.NewMemoryTransactionLog(),
		journal:  recovery.NewMemoryJournal(),
	}
	f.deps = service.Deps{
		Accounts:     f.accounts,
		Transactions: f.txs,
		Journal:      f.journal,
		Locks:        lock.NewAccountLock(),
		Retry:        fastRetry,
	}
	return f
}

// seed creates an account holding balance at the given luck.
func (f *fixture) seed(id, balance int64, luck int) {
	ctx := context.Background()
	if _, err := f.accounts.Create(ctx, &model.Account{ID: id, Username: "player", Luck: luck}); err != nil {
		panic(err)
	}
	if balance > 0 {
		if _, err := f.accounts.ApplyDelta(ctx, id, balance); err != nil {
			panic(err)
		}
	}
}

func (f *fixture) balance(id int64) int64 {
	acc, err := f.accounts.Get(context.Background(), id)
	if err != nil {
		panic(err)
	}
	return acc.Balance
}

func (f *fixture) logSum(id int64) int64 {
	sum, _ := f.txs.SumByAccount(context.Background(), id)
	return sum
}

func newEngine(rng game.Source) *game.Engine {
	reg, err := game.NewRegistry(slot.New(), wheel.New(), cups.New())
	if err != nil {
		panic(err)
	}
	return game.NewEngine(reg, game.DirectLaw{}, rng, 0)
}
