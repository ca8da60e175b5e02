package driving

import (
	"context"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// IndexStats summarises the persisted state.
type IndexStats struct {
	// Tracked is the number of identities in the watermark.
	Tracked int

	// Documents is the number of identities owning at least one chunk.
	Documents int

	// Chunks is the total number of chunks in the derived store.
	Chunks int
}

// IndexService exposes read access to the derived store and watermark
// maintenance to the CLI and MCP adapters.
type IndexService interface {
	// Stats returns counts over the watermark and the derived store.
	Stats(ctx context.Context) (IndexStats, error)

	// Watermark returns the complete persisted watermark.
	Watermark(ctx context.Context) (domain.Watermark, error)

	// Forget drops an identity from the watermark so the next pass treats it as new.
	// Returns domain.ErrNotFound when the identity is not tracked.
	Forget(ctx context.Context, documentID string) error

	// DocumentChunks returns a document's chunks ordered by position.
	// Returns domain.ErrNotFound when the document has none.
	DocumentChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)
}
