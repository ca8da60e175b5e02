package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[string][]domain.Chunk

	// FailFor makes writes for the listed identities return the mapped error.
	FailFor map[string]error
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks:  make(map[string][]domain.Chunk),
		FailFor: make(map[string]error),
	}
}

// ReplaceChunks deletes a document's chunks then inserts the new set.
func (s *ChunkStore) ReplaceChunks(_ context.Context, documentID string, chunks []domain.Chunk) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailFor[documentID]; err != nil {
		return 0, err
	}
	removed := len(s.chunks[documentID])
	delete(s.chunks, documentID)
	if len(chunks) > 0 {
		s.chunks[documentID] = append([]domain.Chunk(nil), chunks...)
	}
	return removed, nil
}

// DeleteChunks removes a document's chunks.
func (s *ChunkStore) DeleteChunks(_ context.Context, documentID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailFor[documentID]; err != nil {
		return 0, err
	}
	removed := len(s.chunks[documentID])
	delete(s.chunks, documentID)
	return removed, nil
}

// GetChunks returns a document's chunks ordered by position.
func (s *ChunkStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks := append([]domain.Chunk(nil), s.chunks[documentID]...)
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Position < chunks[j].Position })
	return chunks, nil
}

// CountChunks returns the total number of chunks.
func (s *ChunkStore) CountChunks(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, chunks := range s.chunks {
		total += len(chunks)
	}
	return total, nil
}

// DocumentIDs returns every identity owning chunks, sorted.
func (s *ChunkStore) DocumentIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.chunks))
	for id := range s.chunks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
