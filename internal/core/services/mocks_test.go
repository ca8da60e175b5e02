package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

type mockDoc struct {
	token   string
	content string
}

// mockRepository implements driven.RemoteRepository over an in-memory corpus.
type mockRepository struct {
	mu       sync.Mutex
	docs     map[string]mockDoc
	listErr  error
	fetchErr map[string]error
	fetched  []string
}

var _ driven.RemoteRepository = (*mockRepository)(nil)

func newMockRepository() *mockRepository {
	return &mockRepository{
		docs:     make(map[string]mockDoc),
		fetchErr: make(map[string]error),
	}
}

func (m *mockRepository) put(id, token, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[id] = mockDoc{token: token, content: content}
}

func (m *mockRepository) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
}

func (m *mockRepository) fetches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]string(nil), m.fetched...)
	sort.Strings(out)
	return out
}

func (m *mockRepository) resetFetches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetched = nil
}

func (m *mockRepository) Type() string { return "mock" }

func (m *mockRepository) ListDocuments(_ context.Context) ([]domain.RemoteDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	listing := make([]domain.RemoteDocument, 0, len(m.docs))
	for id, doc := range m.docs {
		listing = append(listing, domain.RemoteDocument{
			ID:    id,
			Token: doc.token,
			Name:  id + ".txt",
			URL:   "https://example.test/" + id,
		})
	}
	return listing, nil
}

func (m *mockRepository) FetchContent(_ context.Context, doc domain.RemoteDocument) (*domain.RawDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetched = append(m.fetched, doc.ID)
	if err := m.fetchErr[doc.ID]; err != nil {
		return nil, err
	}
	stored, ok := m.docs[doc.ID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", doc.ID, domain.ErrNotFound)
	}
	return &domain.RawDocument{
		DocumentID: doc.ID,
		Content:    []byte(stored.content),
	}, nil
}

func (m *mockRepository) Close() error { return nil }

// mockPipeline splits content on "|" into chunks. Magic contents select
// the failure modes.
type mockPipeline struct{}

var _ driven.ContentPipeline = mockPipeline{}

func (mockPipeline) Process(ctx context.Context, raw *domain.RawDocument) ([]domain.Chunk, error) {
	content := string(raw.Content)
	switch content {
	case "FAIL":
		return nil, fmt.Errorf("%w: cannot parse", domain.ErrPipelineFailure)
	case "UNSUPPORTED":
		return nil, fmt.Errorf("%w: application/x-binary", domain.ErrUnsupportedType)
	case "EMPTY":
		return nil, nil
	case "SLOW":
		<-ctx.Done()
		return nil, ctx.Err()
	}

	parts := strings.Split(content, "|")
	chunks := make([]domain.Chunk, len(parts))
	for i, p := range parts {
		chunks[i] = domain.Chunk{Content: p, SourceURL: raw.URI}
	}
	return chunks, nil
}

// failingCommit lets reads succeed and fails SetAll.
type failingCommit struct {
	driven.WatermarkStore
	err error
}

func (f failingCommit) SetAll(_ context.Context, _ domain.Watermark) error {
	return f.err
}
