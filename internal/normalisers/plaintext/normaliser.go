// Package plaintext provides the fallback Normaliser for text-like content.
package plaintext

import (
	"context"
	"strings"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/tab-separated-values",
		"text/x-go",
		"text/x-python",
		"text/x-rust",
		"text/x-sql",
		"text/x-shellscript",
		"text/yaml",
		"text/toml",
		"text/typescript",
		"text/javascript",
		"text/css",
		"text/markdown",
		"text/html",
		"application/json",
		"application/xml",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise converts raw bytes to text, replacing invalid UTF-8 sequences.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	title, _ := raw.Metadata["title"].(string)
	content := strings.ToValidUTF8(string(raw.Content), "�")

	return normalisers.NewDocument(raw, title, content, "text"), nil
}
