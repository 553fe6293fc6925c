package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRunStoreSaveAndGet(t *testing.T) {
	store := NewMemoryRunStore(time.Minute)
	ctx := context.Background()

	run := TimetableRun{ID: "run-1", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Save(ctx, run))

	got, ok, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run-1", got.ID)

	_, ok, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRunStoreExpiry(t *testing.T) {
	store := NewMemoryRunStore(time.Minute)
	ctx := context.Background()

	stale := TimetableRun{ID: "run-old", CreatedAt: time.Now().Add(-2 * time.Minute)}
	require.NoError(t, store.Save(ctx, stale))

	_, ok, err := store.Get(ctx, "run-old")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRunStoreDelete(t *testing.T) {
	store := NewMemoryRunStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, TimetableRun{ID: "run-1", CreatedAt: time.Now()}))
	require.NoError(t, store.Delete(ctx, "run-1"))

	_, ok, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
