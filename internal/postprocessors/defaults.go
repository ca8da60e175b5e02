package postprocessors

import (
	"fmt"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/postprocessors/chunker"
	"github.com/sab110/Sharepoint-RAG/internal/postprocessors/embedder"
)

// RegisterDefaults registers all built-in processors with the registry.
// The embedder is only buildable when an embedding service is supplied.
func RegisterDefaults(r *Registry, embeddings driven.EmbeddingService) {
	r.Register("chunker", buildChunker)
	r.Register("embedder", func(cfg map[string]any) (driven.PostProcessor, error) {
		if embeddings == nil {
			return nil, fmt.Errorf("embedder: %w", domain.ErrNotConfigured)
		}
		return embedder.New(embeddings, getIntFromConfig(cfg, "batch_size")), nil
	})
}

// DefaultPipeline builds the chunker, followed by the embedder when embeddings
// are configured.
func DefaultPipeline(r *Registry, settings domain.ChunkerSettings, embeddings driven.EmbeddingService) (*Pipeline, error) {
	chunk, err := r.Build("chunker", map[string]any{
		"chunk_size": settings.Size,
		"overlap":    settings.Overlap,
	})
	if err != nil {
		return nil, err
	}

	p := NewPipeline(chunk)
	if embeddings != nil {
		embed, err := r.Build("embedder", nil)
		if err != nil {
			return nil, err
		}
		p.Add(embed)
	}
	return p, nil
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Characters per chunk (default: 1000)
//   - overlap (int): Overlapping characters between chunks (default: 200)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if _, ok := cfg["overlap"]; ok {
		opts = append(opts, chunker.WithOverlap(getIntFromConfig(cfg, "overlap")))
	}

	return chunker.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
