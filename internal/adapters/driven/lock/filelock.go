// Package lock provides the cross-process pass lock. Every sprag process
// opened on one data directory (serve, sync, mcp serve) contends for the
// same lock file, so at most one of them runs a pass at a time.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
)

var _ driven.PassLock = (*FileLock)(nil)

// FileName is the lock file created inside the data directory.
const FileName = ".pass.lock"

// FileLock is an advisory lock on <dataDir>/.pass.lock.
type FileLock struct {
	path string

	mu     sync.Mutex
	flock  *flock.Flock
	locked bool
}

// NewFileLock creates a lock for the given data directory. Nothing is
// touched on disk until TryLock.
func NewFileLock(dataDir string) *FileLock {
	path := filepath.Join(dataDir, FileName)
	return &FileLock{
		path:  path,
		flock: flock.New(path),
	}
}

// TryLock attempts to acquire the lock without blocking.
func (l *FileLock) TryLock() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.locked {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return false, fmt.Errorf("creating lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquiring %s: %w", l.path, err)
	}
	l.locked = acquired
	return acquired, nil
}

// Unlock releases the lock if held.
func (l *FileLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("releasing %s: %w", l.path, err)
	}
	return nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}
