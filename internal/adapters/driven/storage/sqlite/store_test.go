package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "sprag-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testChunks(docID string, contents ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(contents))
	for i, c := range contents {
		chunks[i] = domain.Chunk{
			ID:         fmt.Sprintf("%s-%d-%s", docID, i, c),
			DocumentID: docID,
			Content:    c,
			Position:   i,
			SourceURL:  "https://contoso.sharepoint.com/" + docID,
		}
	}
	return chunks
}

// ==================== Store Creation Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sprag-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "sprag.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sprag-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	nestedDir := filepath.Join(tempDir, "nested", "data")
	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	for _, table := range []string{"watermarks", "chunks", "scheduled_tasks", "task_results"} {
		var exists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.Equal(t, 1, exists, "table %s should exist", table)
	}

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestStore_MigrationIdempotency(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sprag-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store1, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store1.WatermarkStore().SetAll(context.Background(), domain.Watermark{"a": "1"}))
	require.NoError(t, store1.Close())

	store2, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store2.Close()

	var count int
	require.NoError(t, store2.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	// Watermark survives a restart.
	token, err := store2.WatermarkStore().Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "1", token)
}

func TestStore_WALMode(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var journalMode string
	require.NoError(t, store.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)
}

func TestStore_InterfaceGetters(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NotNil(t, store.WatermarkStore())
	assert.NotNil(t, store.ChunkStore())
	assert.NotNil(t, store.SchedulerStore())
}

// ==================== WatermarkStore Tests ====================

func TestWatermarkStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.WatermarkStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWatermarkStore_SetAllReplaces(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	wm := store.WatermarkStore()

	require.NoError(t, wm.SetAll(ctx, domain.Watermark{"a": "t1", "b": "t1", "c": "t1"}))
	require.NoError(t, wm.SetAll(ctx, domain.Watermark{"a": "t2", "c": "t1"}))

	all, err := wm.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Watermark{"a": "t2", "c": "t1"}, all)
}

func TestWatermarkStore_SetAllEmpty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	wm := store.WatermarkStore()

	require.NoError(t, wm.SetAll(ctx, domain.Watermark{"a": "t1"}))
	require.NoError(t, wm.SetAll(ctx, domain.Watermark{}))

	all, err := wm.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestWatermarkStore_Remove(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	wm := store.WatermarkStore()

	require.NoError(t, wm.SetAll(ctx, domain.Watermark{"a": "t1", "b": "t1"}))
	require.NoError(t, wm.Remove(ctx, "a"))

	all, err := wm.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, all.IDs())
}

func TestWatermarkStore_ContextCancellation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.WatermarkStore().SetAll(ctx, domain.Watermark{"a": "t1"})
	assert.Error(t, err)
}

// ==================== ChunkStore Tests ====================

func TestChunkStore_ReplaceAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	cs := store.ChunkStore()

	chunks := testChunks("doc-1", "alpha", "beta")
	chunks[0].Embedding = []float32{0.1, 0.2, 0.3}
	chunks[1].Metadata = map[string]any{"start": float64(10)}

	removed, err := cs.ReplaceChunks(ctx, "doc-1", chunks)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	got, err := cs.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].Content)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, got[0].Embedding)
	assert.Equal(t, "https://contoso.sharepoint.com/doc-1", got[0].SourceURL)
	assert.Equal(t, float64(10), got[1].Metadata["start"])
	assert.Nil(t, got[1].Embedding)
}

func TestChunkStore_ReplaceRemovesPrevious(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	cs := store.ChunkStore()

	_, err := cs.ReplaceChunks(ctx, "doc-1", testChunks("doc-1", "a", "b", "c"))
	require.NoError(t, err)

	removed, err := cs.ReplaceChunks(ctx, "doc-1", testChunks("doc-1", "x"))
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	got, err := cs.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].Content)
}

func TestChunkStore_ReplaceIsAtomic(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	cs := store.ChunkStore()

	_, err := cs.ReplaceChunks(ctx, "doc-1", testChunks("doc-1", "keep"))
	require.NoError(t, err)

	// Duplicate primary keys fail mid-insert; the old set must survive.
	bad := testChunks("doc-1", "x", "y")
	bad[1].ID = bad[0].ID
	_, err = cs.ReplaceChunks(ctx, "doc-1", bad)
	require.Error(t, err)

	got, err := cs.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].Content)
}

func TestChunkStore_DeleteCountAndIDs(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	cs := store.ChunkStore()

	_, err := cs.ReplaceChunks(ctx, "b", testChunks("b", "1", "2"))
	require.NoError(t, err)
	_, err = cs.ReplaceChunks(ctx, "a", testChunks("a", "1"))
	require.NoError(t, err)

	count, err := cs.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	ids, err := cs.DocumentIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	removed, err := cs.DeleteChunks(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = cs.DeleteChunks(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	got, err := cs.GetChunks(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChunkStore_ConcurrentReplace(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	cs := store.ChunkStore()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("doc-%d", n)
			if _, err := cs.ReplaceChunks(ctx, id, testChunks(id, "a", "b")); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	count, err := cs.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 16, count)
}

// ==================== Helper Tests ====================

func TestFloat32Roundtrip(t *testing.T) {
	original := []float32{0, 1.5, -2.25, 3.14159}
	assert.Equal(t, original, bytesToFloat32Slice(float32SliceToBytes(original)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
