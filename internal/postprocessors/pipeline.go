// Package postprocessors turns a normalised document into stored chunks:
// chunking first, then optional embedding.
package postprocessors

import (
	"context"
	"errors"
	"fmt"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline runs post-processors in order. The first stage creates the chunks;
// later stages only see them when there is something to work on.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a pipeline running processors in the order given.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Process runs doc through every stage. A document that chunks to nothing
// returns an empty result without invoking later stages, so an empty
// document never reaches the embedding service.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, errors.New("document is nil")
	}

	var chunks []domain.Chunk
	for i, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("before %s: %w", processor.Name(), err)
		}

		var err error
		chunks, err = processor.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
		if len(chunks) == 0 && i < len(p.processors)-1 {
			logger.Debug("postprocess %s: no chunks after %s", doc.ID, processor.Name())
			return nil, nil
		}
	}

	return chunks, nil
}

// Add appends a stage.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}
