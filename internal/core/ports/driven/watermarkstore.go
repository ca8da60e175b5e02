package driven

import (
	"context"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// WatermarkStore persists the last-processed change token per document identity.
// It must survive process restarts.
type WatermarkStore interface {
	// Get returns the token for an identity, or domain.ErrNotFound.
	Get(ctx context.Context, documentID string) (string, error)

	// All returns the complete watermark.
	All(ctx context.Context) (domain.Watermark, error)

	// SetAll atomically replaces the complete watermark.
	// Either every entry is written or none is.
	SetAll(ctx context.Context, watermark domain.Watermark) error

	// Remove deletes one identity's entry. Removing an absent entry is not an error.
	Remove(ctx context.Context, documentID string) error
}
