package recovery

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-engine/internal/model"
)

type journal interface {
	Record(ctx context.Context, e *model.RecoveryEntry) error
	Pending(ctx context.Context, limit int) ([]*model.RecoveryEntry, error)
	Update(ctx context.Context, e *model.RecoveryEntry) error
}

func exerciseJournal(t *testing.T, j journal) {
	ctx := context.Background()

	first := &model.RecoveryEntry{
		Reference: "w-1",
		Kind:      model.TxKindGameWin,
		AccountID: 42,
		Game:      model.GameSlots,
		Bet:       100,
		Payout:    300,
		Reason:    "credit failed",
	}
	require.NoError(t, j.Record(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, model.RecoveryPending, first.Status)

	second := &model.RecoveryEntry{
		Reference: "w-2",
		Kind:      model.TxKindGameLoss,
		AccountID: 43,
		Game:      model.GameWheel,
		Bet:       50,
		Credited:  true,
		Reason:    "log append failed",
	}
	require.NoError(t, j.Record(ctx, second))

	pending, err := j.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "w-1", pending[0].Reference)
	assert.Equal(t, int64(200), pending[0].Net())
	assert.True(t, pending[1].Credited)
	assert.False(t, pending[1].Logged)

	first.Credited = true
	first.Logged = true
	first.Status = model.RecoveryResolved
	require.NoError(t, j.Update(ctx, first))

	pending, err = j.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "w-2", pending[0].Reference)

	err = j.Update(ctx, &model.RecoveryEntry{ID: "missing"})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestMemoryJournal(t *testing.T) {
	exerciseJournal(t, NewMemoryJournal())
}

func TestSQLiteJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "recovery.db")
	j, err := OpenSQLite(path)
	require.NoError(t, err)

	exerciseJournal(t, j)
	require.NoError(t, j.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	pending, err := reopened.Pending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1, "pending entries must survive a restart")
	assert.Equal(t, int64(43), pending[0].AccountID)
	assert.Equal(t, model.GameWheel, pending[0].Game)
}
