package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sab110/Sharepoint-RAG/internal/adapters/driven/storage/memory"
	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
	coreservices "github.com/sab110/Sharepoint-RAG/internal/core/services"
)

// mockController implements driving.SyncController for testing.
type mockController struct {
	mu       sync.Mutex
	result   domain.TriggerResult
	status   driving.SyncStatus
	waitErr  error
	triggers int
	waits    int
}

func (m *mockController) Trigger(_ context.Context) domain.TriggerResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggers++
	return m.result
}

func (m *mockController) Wait(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waits++
	return m.waitErr
}

func (m *mockController) Status() driving.SyncStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// testStores returns an index service over memory stores seeded with watermark.
func testStores(t *testing.T, watermark domain.Watermark) (*coreservices.IndexService, *memory.WatermarkStore, *memory.ChunkStore) {
	t.Helper()
	watermarks := memory.NewWatermarkStore()
	chunks := memory.NewChunkStore()
	require.NoError(t, watermarks.SetAll(context.Background(), watermark))
	return coreservices.NewIndexService(watermarks, chunks), watermarks, chunks
}

// setApp injects services for one test and resets flag state afterwards.
func setApp(t *testing.T, s *Services) {
	t.Helper()
	old := app
	app = s
	t.Cleanup(func() {
		app = old
		statusJSON = false
		serveAddr = ""
		serveSyncOnStart = false
		serveNoScheduler = false
	})
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
