package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewConfigStore(tempDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(nested)
	require.NoError(t, err)
	assert.DirExists(t, nested)
}

func TestConfigStore_LoadsNestedTables(t *testing.T) {
	tempDir := t.TempDir()
	content := `
data_dir = "/var/lib/sprag"

[source]
type = "filesystem"

[sync]
workers = 8
document_timeout = "30s"

[filesystem]
watch = true
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tempDir)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/sprag", store.GetString("data_dir"))
	assert.Equal(t, "filesystem", store.GetString("source.type"))
	assert.Equal(t, 8, store.GetInt("sync.workers"))
	assert.Equal(t, "30s", store.GetString("sync.document_timeout"))
	assert.True(t, store.GetBool("filesystem.watch"))
}

func TestConfigStore_TypedGetters_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("k", "text"))

	assert.Equal(t, 0, store.GetInt("k"))
	assert.False(t, store.GetBool("k"))
	assert.Equal(t, "", store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SaveReload_PreservesTables(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewConfigStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("source.type", "github"))
	require.NoError(t, store.Set("github.owner", "acme"))
	require.NoError(t, store.Set("sync.workers", 2))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[github]")
	assert.NotContains(t, string(raw), `"github.owner"`)

	reloaded, err := NewConfigStore(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "github", reloaded.GetString("source.type"))
	assert.Equal(t, "acme", reloaded.GetString("github.owner"))
	assert.Equal(t, 2, reloaded.GetInt("sync.workers"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("server.addr", ":9000"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.toml"), []byte("[[[not toml"), 0600))

	_, err := NewConfigStore(tempDir)
	assert.Error(t, err)
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tempDir)
	require.NoError(t, err)
	assert.Empty(t, store.GetString("source.type"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("sync.workers", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("sync.workers")
		}()
	}
	wg.Wait()
}

func TestNestMap_RoundTrip(t *testing.T) {
	flat := map[string]any{"a.b.c": 1, "a.d": "x", "top": true}
	assert.Equal(t, flat, flattenMap(nestMap(flat), ""))
}
