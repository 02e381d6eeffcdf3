package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-engine/internal/model"
	"casino-engine/internal/service"
	"casino-engine/internal/types"
)

func TestEnsureCreatesOnce(t *testing.T) {
	f := newFixture()
	svc := service.NewAccountService(f.deps, service.AccountOptions{DefaultLuck: model.DefaultLuck})
	ctx := context.Background()

	acc, created, err := svc.Ensure(ctx, 10, "alice", nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(10), acc.ID)
	assert.Equal(t, "alice", acc.Username)
	assert.Zero(t, acc.Balance)
	assert.Equal(t, model.DefaultLuck, acc.Luck)

	acc, created, err = svc.Ensure(ctx, 10, "renamed", nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "alice", acc.Username)
	assert.Zero(t, f.txs.Len())
}

func TestEnsureWelcomeBonus(t *testing.T) {
	f := newFixture()
	svc := service.NewAccountService(f.deps, service.AccountOptions{DefaultLuck: 50, WelcomeBonus: 500})
	ctx := context.Background()

	acc, created, err := svc.Ensure(ctx, 1, "bob", nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(500), acc.Balance)

	txs, err := svc.History(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, model.TxKindWelcomeBonus, txs[0].Kind)
	assert.Equal(t, int64(500), txs[0].Amount)

	// No second bonus for an existing account
	_, _, err = svc.Ensure(ctx, 1, "bob", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(500), f.balance(1))
}

func TestEnsureReferral(t *testing.T) {
	f := newFixture()
	svc := service.NewAccountService(f.deps, service.AccountOptions{})
	ctx := context.Background()

	_, _, err := svc.Ensure(ctx, 1, "referrer", nil)
	require.NoError(t, err)

	referrer := int64(1)
	acc, _, err := svc.Ensure(ctx, 2, "friend", &referrer)
	require.NoError(t, err)
	require.NotNil(t, acc.ReferredBy)
	assert.Equal(t, int64(1), *acc.ReferredBy)

	self := int64(3)
	acc, _, err = svc.Ensure(ctx, 3, "loner", &self)
	require.NoError(t, err)
	assert.Nil(t, acc.ReferredBy)

	ghost := int64(404)
	acc, _, err = svc.Ensure(ctx, 4, "other", &ghost)
	require.NoError(t, err)
	assert.Nil(t, acc.ReferredBy)
}

func TestDepositWithdraw(t *testing.T) {
	f := newFixture()
	f.seed(1, 100, 50)
	svc := service.NewAccountService(f.deps, service.AccountOptions{})
	ctx := context.Background()

	m, err := svc.Deposit(ctx, 1, 250)
	require.NoError(t, err)
	assert.Equal(t, model.TxKindDeposit, m.Kind)
	assert.Equal(t, int64(250), m.Amount)
	assert.Equal(t, int64(350), m.Balance)

	m, err = svc.Withdraw(ctx, 1, 300)
	require.NoError(t, err)
	assert.Equal(t, model.TxKindWithdraw, m.Kind)
	assert.Equal(t, int64(-300), m.Amount)
	assert.Equal(t, int64(50), m.Balance)

	_, err = svc.Withdraw(ctx, 1, 51)
	assert.ErrorIs(t, err, service.ErrInsufficientFunds)
	assert.Equal(t, int64(50), f.balance(1))

	assert.Equal(t, int64(-50), f.logSum(1))
}

func TestMovementValidation(t *testing.T) {
	f := newFixture()
	f.seed(1, 100, 50)
	svc := service.NewAccountService(f.deps, service.AccountOptions{})
	ctx := context.Background()

	for _, amount := range []int64{0, -1} {
		_, err := svc.Deposit(ctx, 1, amount)
		assert.Equal(t, types.CodeInvalidAmount, types.CodeOf(err))
		_, err = svc.Withdraw(ctx, 1, amount)
		assert.Equal(t, types.CodeInvalidAmount, types.CodeOf(err))
	}

	_, err := svc.Deposit(ctx, 2, 10)
	assert.ErrorIs(t, err, service.ErrAccountNotFound)

	assert.Equal(t, int64(100), f.balance(1))
	assert.Zero(t, f.txs.Len())
}

func TestSetLuck(t *testing.T) {
	f := newFixture()
	f.seed(1, 0, 50)
	svc := service.NewAccountService(f.deps, service.AccountOptions{})
	ctx := context.Background()

	acc, err := svc.SetLuck(ctx, 1, 80)
	require.NoError(t, err)
	assert.Equal(t, 80, acc.Luck)

	for _, luck := range []int{-1, 101} {
		_, err := svc.SetLuck(ctx, 1, luck)
		assert.ErrorIs(t, err, service.ErrInvalidLuck)
	}

	_, err = svc.SetLuck(ctx, 2, 10)
	assert.ErrorIs(t, err, service.ErrAccountNotFound)

	acc, err = svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 80, acc.Luck)
}

func TestHistory(t *testing.T) {
	f := newFixture()
	f.seed(1, 0, 50)
	svc := service.NewAccountService(f.deps, service.AccountOptions{})
	ctx := context.Background()

	for i := int64(1); i <= 120; i++ {
		_, err := svc.Deposit(ctx, 1, i)
		require.NoError(t, err)
	}

	txs, err := svc.History(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, txs, service.DefaultHistoryLimit)
	assert.Equal(t, int64(120), txs[0].Amount)
	assert.Equal(t, int64(119), txs[1].Amount)

	txs, err = svc.History(ctx, 1, 1000)
	require.NoError(t, err)
	assert.Len(t, txs, service.MaxHistoryLimit)

	_, err = svc.History(ctx, 2, 10)
	assert.ErrorIs(t, err, service.ErrAccountNotFound)
}

func TestAudit(t *testing.T) {
	f := newFixture()
	svc := service.NewAccountService(f.deps, service.AccountOptions{DefaultLuck: 50, WelcomeBonus: 200})
	ctx := context.Background()

	_, _, err := svc.Ensure(ctx, 1, "carol", nil)
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, 1, 300)
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, 1, 150)
	require.NoError(t, err)

	a, err := svc.Audit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(350), a.Balance)
	assert.Equal(t, int64(350), a.LedgerSum)
	assert.Zero(t, a.Drift)

	// A balance change that bypassed the log shows up as drift
	_, err = f.accounts.ApplyDelta(ctx, 1, 25)
	require.NoError(t, err)
	a, err = svc.Audit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(25), a.Drift)

	_, err = svc.Audit(ctx, 404)
	assert.ErrorIs(t, err, service.ErrAccountNotFound)
}
