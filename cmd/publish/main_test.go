package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ranasykuri/mysteryadvanturebot/internal/logger"
	"github.com/ranasykuri/mysteryadvanturebot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *storage.RedisStorage {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := storage.NewRedisStorage("redis://"+mr.Addr(), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRun_PushListDelete(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()
	log := logger.Discard()

	files := []string{
		filepath.Join("..", "..", "data", "packages", "mystery_manor.json"),
		filepath.Join("..", "..", "data", "packages", "lighthouse.yaml"),
	}
	require.NoError(t, run(ctx, store, log, "push", files))

	list, err := store.ListPackages(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"mystery_manor": "The Mystery Adventure",
		"lighthouse":    "The Keeper's Light",
	}, list)
	require.NoError(t, run(ctx, store, log, "list", nil))

	require.NoError(t, run(ctx, store, log, "delete", []string{"lighthouse"}))
	_, err = store.GetPackage(ctx, "lighthouse")
	assert.ErrorIs(t, err, storage.ErrPackageNotFound)
}

func TestRun_Errors(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()
	log := logger.Discard()

	assert.Error(t, run(ctx, store, log, "push", nil))
	assert.Error(t, run(ctx, store, log, "push", []string{"missing.json"}))
	assert.Error(t, run(ctx, store, log, "push", []string{"notes.txt"}))
	assert.ErrorContains(t, run(ctx, store, log, "fly", nil), "unknown command")
}
