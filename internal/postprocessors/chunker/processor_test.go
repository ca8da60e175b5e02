package chunker

import (
	"context"
	"strings"
	"testing"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		if p.overlap >= p.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		if p.chunkSize != DefaultChunkSize || p.overlap != DefaultChunkOverlap {
			t.Errorf("expected defaults, got %d/%d", p.chunkSize, p.overlap)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	if New().Name() != "chunker" {
		t.Error("expected name 'chunker'")
	}
}

func TestProcessor_Process_EmptyContent(t *testing.T) {
	p := New()

	for _, content := range []string{"", "   \n\n\t "} {
		chunks, err := p.Process(context.Background(), &domain.Document{ID: "d", Content: content}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 0 {
			t.Errorf("expected 0 chunks for %q, got %d", content, len(chunks))
		}
	}
}

func TestProcessor_Process_SmallContent(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))
	doc := &domain.Document{ID: "test-doc", Content: "  Quarterly report.  "}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "Quarterly report." {
		t.Errorf("unexpected content %q", chunks[0].Content)
	}
	if chunks[0].DocumentID != "test-doc" || chunks[0].Position != 0 || chunks[0].ID == "" {
		t.Errorf("unexpected chunk fields: %+v", chunks[0])
	}
}

func TestProcessor_Process_PrefersParagraphBoundary(t *testing.T) {
	p := New(WithChunkSize(60), WithOverlap(0))
	first := strings.Repeat("a", 40)
	second := strings.Repeat("b", 40)
	doc := &domain.Document{ID: "d", Content: first + "\n\n" + second}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Content != first || chunks[1].Content != second {
		t.Errorf("chunks not split on paragraph: %q / %q", chunks[0].Content, chunks[1].Content)
	}
}

func TestProcessor_Process_SizeAndOverlap(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))
	words := strings.Repeat("word ", 200)
	doc := &domain.Document{ID: "d", Content: words}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 10 {
		t.Fatalf("expected at least 10 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c.Content)) > 100 {
			t.Errorf("chunk %d exceeds size: %d", i, len(c.Content))
		}
		if c.Position != i {
			t.Errorf("chunk %d has position %d", i, c.Position)
		}
		if strings.HasPrefix(c.Content, "ord") {
			t.Errorf("chunk %d starts mid-word: %q", i, c.Content[:10])
		}
	}

	start1, _ := chunks[1].Metadata["start"].(int)
	end0, _ := chunks[0].Metadata["end"].(int)
	if start1 >= end0 {
		t.Errorf("expected overlap: chunk1 start %d, chunk0 end %d", start1, end0)
	}
}

func TestProcessor_Process_MultibyteSafe(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(2))
	doc := &domain.Document{ID: "d", Content: strings.Repeat("日本語", 10)}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range chunks {
		if strings.ContainsRune(c.Content, '�') {
			t.Errorf("chunk split inside a rune: %q", c.Content)
		}
	}
}

func TestProcessor_Process_FreshIDs(t *testing.T) {
	p := New()
	doc := &domain.Document{ID: "d", Content: "same content"}

	a, _ := p.Process(context.Background(), doc, nil)
	b, _ := p.Process(context.Background(), doc, nil)
	if a[0].ID == b[0].ID {
		t.Error("chunk ids must not be reused across runs")
	}
}

func TestProcessor_Process_IgnoresInputChunks(t *testing.T) {
	p := New()
	input := []domain.Chunk{{ID: "old", Content: "stale"}}

	chunks, err := p.Process(context.Background(), &domain.Document{ID: "d", Content: "fresh"}, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Content != "fresh" {
		t.Errorf("unexpected chunks: %+v", chunks)
	}
}
