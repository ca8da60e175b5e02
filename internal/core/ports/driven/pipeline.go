package driven

import (
	"context"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// ContentPipeline turns fetched bytes into ordered, embedded chunks.
// It is the parse -> chunk -> embed boundary of a pass.
type ContentPipeline interface {
	// Process returns the chunks for one document.
	// Returns domain.ErrUnsupportedType when no normaliser handles the content,
	// and an empty slice with nil error when the content yielded no text.
	Process(ctx context.Context, raw *domain.RawDocument) ([]domain.Chunk, error)
}
