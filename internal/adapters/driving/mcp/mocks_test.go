package mcp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
)

// mockSyncController is a mock implementation of driving.SyncController.
type mockSyncController struct {
	mu       sync.Mutex
	result   domain.TriggerResult
	status   driving.SyncStatus
	waitErr  error
	triggers int
	waits    int
}

func (m *mockSyncController) Trigger(_ context.Context) domain.TriggerResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggers++
	return m.result
}

func (m *mockSyncController) Wait(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waits++
	return m.waitErr
}

func (m *mockSyncController) Status() driving.SyncStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	watermark domain.Watermark
	chunks    map[string][]domain.Chunk
	err       error
}

func (m *mockIndexService) Stats(_ context.Context) (driving.IndexStats, error) {
	return driving.IndexStats{Tracked: len(m.watermark)}, m.err
}

func (m *mockIndexService) Watermark(_ context.Context) (domain.Watermark, error) {
	return m.watermark, m.err
}

func (m *mockIndexService) Forget(_ context.Context, _ string) error {
	return m.err
}

func (m *mockIndexService) DocumentChunks(_ context.Context, id string) ([]domain.Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	chunks, ok := m.chunks[id]
	if !ok {
		return nil, fmt.Errorf("%w: no chunks for %s", domain.ErrNotFound, id)
	}
	return chunks, nil
}

var cooldownUntil = time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC)
