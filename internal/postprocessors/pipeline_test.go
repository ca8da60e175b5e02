package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// stageProcessor records calls and optionally replaces the chunks it sees.
type stageProcessor struct {
	name   string
	chunks []domain.Chunk
	err    error
	calls  int
}

func (s *stageProcessor) Name() string { return s.name }

func (s *stageProcessor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.chunks != nil {
		return s.chunks, nil
	}
	return chunks, nil
}

var testDoc = &domain.Document{ID: "doc-1", Content: "quarterly report"}

func TestPipeline_Process_NilDocument(t *testing.T) {
	if _, err := NewPipeline().Process(context.Background(), nil); err == nil {
		t.Error("expected error for nil document")
	}
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	chunks, err := NewPipeline().Process(context.Background(), testDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunks != nil {
		t.Errorf("expected nil chunks, got %v", chunks)
	}
}

func TestPipeline_Process_StagesRunInOrder(t *testing.T) {
	chunk := &stageProcessor{name: "chunker", chunks: []domain.Chunk{{ID: "c1", Content: "first"}}}
	embed := &stageProcessor{name: "embedder", chunks: []domain.Chunk{
		{ID: "c1", Content: "first", Embedding: []float32{0.5}},
	}}

	p := NewPipeline(chunk, embed)
	chunks, err := p.Process(context.Background(), testDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Embedding == nil {
		t.Errorf("expected embedded chunk from last stage, got %+v", chunks)
	}
	if chunk.calls != 1 || embed.calls != 1 {
		t.Errorf("expected one call per stage, got %d/%d", chunk.calls, embed.calls)
	}
}

func TestPipeline_Process_EmptyChunksSkipLaterStages(t *testing.T) {
	chunk := &stageProcessor{name: "chunker", chunks: []domain.Chunk{}}
	embed := &stageProcessor{name: "embedder"}

	chunks, err := NewPipeline(chunk, embed).Process(context.Background(), testDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
	if embed.calls != 0 {
		t.Error("embedder must not run for an empty document")
	}
}

func TestPipeline_Process_ProcessorError(t *testing.T) {
	want := errors.New("embedding quota exhausted")
	p := NewPipeline(
		&stageProcessor{name: "chunker", chunks: []domain.Chunk{{ID: "c1"}}},
		&stageProcessor{name: "embedder", err: want},
	)

	_, err := p.Process(context.Background(), testDoc)
	if !errors.Is(err, want) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestPipeline_Process_CancelledContext(t *testing.T) {
	stage := &stageProcessor{name: "chunker"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(stage).Process(ctx, testDoc)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if stage.calls != 0 {
		t.Error("stage must not run after cancellation")
	}
}

func TestPipeline_AddAndNames(t *testing.T) {
	p := NewPipeline(&stageProcessor{name: "chunker"})
	p.Add(&stageProcessor{name: "embedder"})

	if p.Len() != 2 {
		t.Fatalf("expected 2 stages, got %d", p.Len())
	}
	names := p.Names()
	if names[0] != "chunker" || names[1] != "embedder" {
		t.Errorf("unexpected names %v", names)
	}
}
