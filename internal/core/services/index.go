package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService reads the persisted watermark and derived store.
type IndexService struct {
	watermarks driven.WatermarkStore
	chunks     driven.ChunkStore
}

// NewIndexService creates an index service over the given stores.
func NewIndexService(watermarks driven.WatermarkStore, chunks driven.ChunkStore) *IndexService {
	return &IndexService{watermarks: watermarks, chunks: chunks}
}

// Stats returns counts over the watermark and the derived store.
func (s *IndexService) Stats(ctx context.Context) (driving.IndexStats, error) {
	var stats driving.IndexStats

	watermark, err := s.watermarks.All(ctx)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", domain.ErrWatermarkUnavailable, err)
	}
	stats.Tracked = len(watermark)

	ids, err := s.chunks.DocumentIDs(ctx)
	if err != nil {
		return stats, fmt.Errorf("list indexed documents: %w", err)
	}
	stats.Documents = len(ids)

	if stats.Chunks, err = s.chunks.CountChunks(ctx); err != nil {
		return stats, fmt.Errorf("count chunks: %w", err)
	}
	return stats, nil
}

// Watermark returns the complete persisted watermark.
func (s *IndexService) Watermark(ctx context.Context) (domain.Watermark, error) {
	watermark, err := s.watermarks.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrWatermarkUnavailable, err)
	}
	return watermark, nil
}

// Forget drops an identity from the watermark. Its chunks stay in place
// until the next pass replaces them.
func (s *IndexService) Forget(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	if _, err := s.watermarks.Get(ctx, documentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s is not tracked", domain.ErrNotFound, documentID)
		}
		return fmt.Errorf("%w: %w", domain.ErrWatermarkUnavailable, err)
	}
	if err := s.watermarks.Remove(ctx, documentID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWatermarkUnavailable, err)
	}
	return nil
}

// DocumentChunks returns a document's chunks ordered by position.
func (s *IndexService) DocumentChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	chunks, err := s.chunks.GetChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks for %s", domain.ErrNotFound, documentID)
	}
	return chunks, nil
}
