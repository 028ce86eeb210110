package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)

	t.Run("MissingKey", func(t *testing.T) {
		_, err := repo.Load(ctx, state.KeyData)
		assert.ErrorIs(t, err, state.ErrKeyNotFound)
	})

	t.Run("SaveLoadOverwrite", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, state.KeyData, []byte(`{"products":[]}`)))
		require.NoError(t, repo.Save(ctx, state.KeyData, []byte(`{"clients":[]}`)))

		got, err := repo.Load(ctx, state.KeyData)
		require.NoError(t, err)
		assert.JSONEq(t, `{"clients":[]}`, string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, state.KeyMonthlyGoal, []byte(`5000`)))
		require.NoError(t, repo.Remove(ctx, state.KeyMonthlyGoal))
		require.NoError(t, repo.Remove(ctx, state.KeyMonthlyGoal))

		_, err := repo.Load(ctx, state.KeyMonthlyGoal)
		assert.ErrorIs(t, err, state.ErrKeyNotFound)
	})

	t.Run("InvalidKey", func(t *testing.T) {
		for _, key := range []string{"", "../etc", `a\b`, ".hidden"} {
			assert.ErrorIs(t, repo.Save(ctx, key, []byte("1")), ErrInvalidKey, key)
		}
	})

	t.Run("CanceledContext", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := repo.Load(canceled, state.KeyData)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
