package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 50 * time.Millisecond

// startWatch runs watch in the background and returns a channel receiving
// one value per notify call.
func startWatch(t *testing.T, repo *Repository) <-chan struct{} {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	notified := make(chan struct{}, 16)
	done := make(chan error, 1)

	go func() {
		done <- repo.watch(ctx, testDebounce, func() { notified <- struct{}{} })
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watch did not return after cancel")
		}
	})

	// Let the watcher register before the test mutates the tree.
	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return len(repo.watchers) == 1
	}, time.Second, 10*time.Millisecond)
	return notified
}

func waitNotify(t *testing.T, notified <-chan struct{}) {
	t.Helper()
	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}
}

func TestRepository_Watch_NotifiesOnCreate(t *testing.T) {
	root := t.TempDir()
	notified := startWatch(t, New(root))

	writeFile(t, root, "new-file.txt", "content")
	waitNotify(t, notified)
}

func TestRepository_Watch_CoalescesBursts(t *testing.T) {
	root := t.TempDir()
	p := writeFile(t, root, "doc.txt", "v0")
	notified := startWatch(t, New(root))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(p, []byte("v"+string(rune('1'+i))), 0o644))
	}
	waitNotify(t, notified)

	select {
	case <-notified:
		t.Fatal("burst produced more than one notification")
	case <-time.After(4 * testDebounce):
	}
}

func TestRepository_Watch_NewDirectories(t *testing.T) {
	root := t.TempDir()
	notified := startWatch(t, New(root))

	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	waitNotify(t, notified)

	writeFile(t, root, "sub/inner.txt", "inner")
	waitNotify(t, notified)
}

func TestRepository_Watch_IgnoresHidden(t *testing.T) {
	root := t.TempDir()
	notified := startWatch(t, New(root))

	writeFile(t, root, ".swap", "x")
	select {
	case <-notified:
		t.Fatal("hidden file triggered a notification")
	case <-time.After(4 * testDebounce):
	}
}

func TestRepository_Watch_MissingRoot(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "missing"))

	err := repo.Watch(context.Background(), func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root path error")
}

func TestRepository_Watch_StopsOnClose(t *testing.T) {
	repo := New(t.TempDir())
	done := make(chan error, 1)
	go func() { done <- repo.watch(context.Background(), testDebounce, func() {}) }()

	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return len(repo.watchers) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, repo.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return after close")
	}
}

func TestWatcher_HandleEvent(t *testing.T) {
	root := t.TempDir()
	fsw, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	w := &watcher{fs: fsw, root: root}
	defer w.close()

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"create", filepath.Join(root, "a.txt"), fsnotify.Create, true},
		{"write", filepath.Join(root, "a.txt"), fsnotify.Write, true},
		{"remove", filepath.Join(root, "a.txt"), fsnotify.Remove, true},
		{"rename", filepath.Join(root, "a.txt"), fsnotify.Rename, true},
		{"chmod only", filepath.Join(root, "a.txt"), fsnotify.Chmod, false},
		{"write and chmod", filepath.Join(root, "a.txt"), fsnotify.Write | fsnotify.Chmod, true},
		{"hidden", filepath.Join(root, ".a.txt"), fsnotify.Write, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.handleEvent(fsnotify.Event{Name: tt.path, Op: tt.op}))
		})
	}
}
