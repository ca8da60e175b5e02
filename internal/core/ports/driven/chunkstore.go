package driven

import (
	"context"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// ChunkStore is the derived store: chunks queryable by owning document identity.
type ChunkStore interface {
	// ReplaceChunks deletes every chunk owned by documentID, then inserts chunks.
	// Returns the number of chunks removed.
	ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) (int, error)

	// DeleteChunks removes every chunk owned by documentID and returns how many.
	DeleteChunks(ctx context.Context, documentID string) (int, error)

	// GetChunks returns a document's chunks ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// CountChunks returns the total number of chunks.
	CountChunks(ctx context.Context) (int, error)

	// DocumentIDs returns every identity owning at least one chunk, sorted.
	DocumentIDs(ctx context.Context) ([]string, error)
}
