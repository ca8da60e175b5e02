package normalisers

import (
	"path/filepath"
	"strings"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// NewDocument builds the normalised form of raw. The document keeps the
// source identity so chunks stay owned by it.
func NewDocument(raw *domain.RawDocument, title, content, format string) *domain.Document {
	metadata := make(map[string]any, len(raw.Metadata)+2)
	for k, v := range raw.Metadata {
		metadata[k] = v
	}
	metadata["mime_type"] = raw.MIMEType
	if format != "" {
		metadata["format"] = format
	}

	if title == "" {
		title = TitleFromName(raw.Name, raw.URI)
	}

	return &domain.Document{
		ID:       raw.DocumentID,
		URI:      raw.URI,
		Title:    title,
		Content:  content,
		Metadata: metadata,
	}
}

// TitleFromName derives a human-readable title from a file name, falling back to the URI.
func TitleFromName(name, uri string) string {
	if name == "" {
		name = filepath.Base(uri)
	}
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}
