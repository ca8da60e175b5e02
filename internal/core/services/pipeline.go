package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
)

// Ensure ContentPipeline implements the interface.
var _ driven.ContentPipeline = (*ContentPipeline)(nil)

// ContentPipeline turns fetched bytes into chunks: normalise, then run the
// post-processor chain (chunk, embed).
type ContentPipeline struct {
	registry driven.NormaliserRegistry
	pipeline driven.PostProcessorPipeline
}

// NewContentPipeline creates a content pipeline.
func NewContentPipeline(registry driven.NormaliserRegistry, pipeline driven.PostProcessorPipeline) *ContentPipeline {
	return &ContentPipeline{
		registry: registry,
		pipeline: pipeline,
	}
}

// Process returns the ordered chunks for one document.
// domain.ErrUnsupportedType is returned unwrapped so callers can record the
// outcome; every other failure is wrapped in domain.ErrPipelineFailure.
func (p *ContentPipeline) Process(ctx context.Context, raw *domain.RawDocument) ([]domain.Chunk, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}

	doc, err := p.registry.Normalise(ctx, raw)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: normalise %s: %w", domain.ErrPipelineFailure, raw.DocumentID, err)
	}

	chunks, err := p.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: process %s: %w", domain.ErrPipelineFailure, raw.DocumentID, err)
	}

	for i := range chunks {
		chunks[i].DocumentID = raw.DocumentID
		chunks[i].SourceURL = raw.URI
	}
	return chunks, nil
}
