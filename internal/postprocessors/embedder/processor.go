// Package embedder attaches vector embeddings to chunks produced earlier in the pipeline.
package embedder

import (
	"context"
	"fmt"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
)

// DefaultBatchSize is the number of chunk texts sent per embedding request.
const DefaultBatchSize = 64

// Processor embeds chunk content in batches.
type Processor struct {
	service   driven.EmbeddingService
	batchSize int
}

// New creates an embedding processor. A batchSize of 0 uses DefaultBatchSize.
func New(service driven.EmbeddingService, batchSize int) *Processor {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Processor{service: service, batchSize: batchSize}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "embedder"
}

// Process sets Embedding on every chunk. Any batch failure fails the document.
func (p *Processor) Process(ctx context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	for start := 0; start < len(chunks); start += p.batchSize {
		end := min(start+p.batchSize, len(chunks))

		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Content)
		}

		vectors, err := p.service.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("%w: got %d vectors for %d texts",
				domain.ErrEmbeddingUnavailable, len(vectors), len(texts))
		}

		for i, v := range vectors {
			chunks[start+i].Embedding = v
		}
	}
	return chunks, nil
}
