package memory

import (
	"context"
	"sync"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
)

// Ensure WatermarkStore implements the interface.
var _ driven.WatermarkStore = (*WatermarkStore)(nil)

// WatermarkStore is an in-memory implementation of driven.WatermarkStore.
type WatermarkStore struct {
	mu     sync.RWMutex
	tokens domain.Watermark

	// Err, when set, is returned by every operation.
	Err error
}

// NewWatermarkStore creates a new in-memory watermark store.
func NewWatermarkStore() *WatermarkStore {
	return &WatermarkStore{
		tokens: make(domain.Watermark),
	}
}

// Get returns the token for an identity.
func (s *WatermarkStore) Get(_ context.Context, documentID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return "", s.Err
	}
	token, ok := s.tokens[documentID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return token, nil
}

// All returns a copy of the complete watermark.
func (s *WatermarkStore) All(_ context.Context) (domain.Watermark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.tokens.Clone(), nil
}

// SetAll replaces the complete watermark.
func (s *WatermarkStore) SetAll(_ context.Context, watermark domain.Watermark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.tokens = watermark.Clone()
	return nil
}

// Remove deletes one identity's entry.
func (s *WatermarkStore) Remove(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.tokens, documentID)
	return nil
}
