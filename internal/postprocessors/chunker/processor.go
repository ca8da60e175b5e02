// Package chunker provides a boundary-aware text chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// separators are tried in order when looking for a cut point.
var separators = [][]rune{
	[]rune("\n\n"),
	[]rune("\n"),
	[]rune(". "),
	[]rune(" "),
}

// Processor splits document content into overlapping chunks of at most
// chunkSize characters, cutting at paragraph, line, sentence or word
// boundaries when one falls in the second half of the window.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored. Whitespace-only spans never become chunks.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	text := []rune(doc.Content)
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, len(text)/(p.chunkSize-p.overlap)+1)

	start := 0
	for start < len(text) {
		end := start + p.chunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = p.cutPoint(text, start, end)
		}

		if content := strings.TrimSpace(string(text[start:end])); content != "" {
			chunks = append(chunks, domain.Chunk{
				ID:         uuid.New().String(),
				DocumentID: doc.ID,
				Content:    content,
				Position:   len(chunks),
				Metadata: map[string]any{
					"start": start,
					"end":   end,
				},
			})
		}

		if end == len(text) {
			break
		}

		next := end - p.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks, nil
}

// cutPoint returns the index just past the best separator in text[start:end],
// or end when no separator sits in the second half of the window.
func (p *Processor) cutPoint(text []rune, start, end int) int {
	floor := start + p.chunkSize/2
	for _, sep := range separators {
		for i := end - len(sep); i >= floor; i-- {
			if hasPrefixAt(text, sep, i) {
				return i + len(sep)
			}
		}
	}
	return end
}

func hasPrefixAt(text, sep []rune, i int) bool {
	if i < 0 || i+len(sep) > len(text) {
		return false
	}
	for j, r := range sep {
		if text[i+j] != r {
			return false
		}
	}
	return true
}
