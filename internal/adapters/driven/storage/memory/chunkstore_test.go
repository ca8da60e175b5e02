package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

func chunksFor(id string, contents ...string) []domain.Chunk {
	out := make([]domain.Chunk, len(contents))
	for i, c := range contents {
		out[i] = domain.Chunk{ID: id + "-" + c, DocumentID: id, Content: c, Position: i}
	}
	return out
}

func TestChunkStore_ReplaceChunks(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	removed, err := store.ReplaceChunks(ctx, "doc-1", chunksFor("doc-1", "a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	removed, err = store.ReplaceChunks(ctx, "doc-1", chunksFor("doc-1", "x"))
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "x", chunks[0].Content)
}

func TestChunkStore_ReplaceWithEmpty(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	_, err := store.ReplaceChunks(ctx, "doc-1", chunksFor("doc-1", "a"))
	require.NoError(t, err)
	_, err = store.ReplaceChunks(ctx, "doc-1", nil)
	require.NoError(t, err)

	ids, err := store.DocumentIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestChunkStore_DeleteAndCount(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	_, _ = store.ReplaceChunks(ctx, "b", chunksFor("b", "1", "2"))
	_, _ = store.ReplaceChunks(ctx, "a", chunksFor("a", "1"))

	count, err := store.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	ids, err := store.DocumentIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	removed, err := store.DeleteChunks(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = store.DeleteChunks(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestChunkStore_FailFor(t *testing.T) {
	store := NewChunkStore()
	store.FailFor["bad"] = errors.New("write failed")
	ctx := context.Background()

	_, err := store.ReplaceChunks(ctx, "bad", chunksFor("bad", "a"))
	assert.Error(t, err)
	_, err = store.DeleteChunks(ctx, "bad")
	assert.Error(t, err)

	_, err = store.ReplaceChunks(ctx, "good", chunksFor("good", "a"))
	assert.NoError(t, err)
}
