package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

func TestWatermarkStore_Empty(t *testing.T) {
	store := NewWatermarkStore()
	ctx := context.Background()

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = store.Get(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWatermarkStore_SetAll_Replaces(t *testing.T) {
	store := NewWatermarkStore()
	ctx := context.Background()

	require.NoError(t, store.SetAll(ctx, domain.Watermark{"a": "1", "b": "1"}))
	require.NoError(t, store.SetAll(ctx, domain.Watermark{"b": "2"}))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Watermark{"b": "2"}, all)

	token, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", token)
}

func TestWatermarkStore_IsolatedFromCaller(t *testing.T) {
	store := NewWatermarkStore()
	ctx := context.Background()

	wm := domain.Watermark{"a": "1"}
	require.NoError(t, store.SetAll(ctx, wm))
	wm["a"] = "mutated"

	all, err := store.All(ctx)
	require.NoError(t, err)
	all["b"] = "extra"

	again, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Watermark{"a": "1"}, again)
}

func TestWatermarkStore_Remove(t *testing.T) {
	store := NewWatermarkStore()
	ctx := context.Background()

	require.NoError(t, store.SetAll(ctx, domain.Watermark{"a": "1", "b": "2"}))
	require.NoError(t, store.Remove(ctx, "a"))
	require.NoError(t, store.Remove(ctx, "missing"))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, all.IDs())
}

func TestWatermarkStore_Err(t *testing.T) {
	store := NewWatermarkStore()
	store.Err = errors.New("disk gone")
	ctx := context.Background()

	_, err := store.All(ctx)
	assert.Error(t, err)
	assert.Error(t, store.SetAll(ctx, domain.Watermark{}))
}
