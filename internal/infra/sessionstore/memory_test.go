//go:build unit

package sessionstore_test

import (
	"context"
	"testing"

	"flea-market/internal/infra/sessionstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCartStore_DistinguishesAbsentFromEmpty(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.NewMemoryCartStore()

	_, found, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found, "no cart yet")

	require.NoError(t, store.Set(ctx, "s1", []uuid.UUID{}))
	items, found, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, found, "emptied cart still exists")
	assert.Empty(t, items)

	require.NoError(t, store.Remove(ctx, "s1"))
	_, found, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCartStore_SlotsAreIsolatedAndDetached(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.NewMemoryCartStore()

	a, b := uuid.New(), uuid.New()
	require.NoError(t, store.Set(ctx, "s1", []uuid.UUID{a}))
	require.NoError(t, store.Set(ctx, "s2", []uuid.UUID{b}))

	got1, _, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	got1[0] = uuid.New() // mutating the returned slice must not affect the slot

	again, _, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a}, again)

	got2, _, err := store.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b}, got2)
}
