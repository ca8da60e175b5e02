// Package pptx provides a Normaliser for PowerPoint presentations.
package pptx

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PPTX presentations.
type Normaliser struct{}

// New creates a new PPTX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts slide text in slide order, one blank line between slides.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := normalisers.OpenOOXML(raw.Content)
	if err != nil {
		return nil, err
	}

	var slides []string
	for _, name := range normalisers.NumberedParts(reader, "ppt/slides/slide", ".xml") {
		data, err := normalisers.ReadPart(reader, name)
		if err != nil {
			return nil, err
		}
		text, err := slideText(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, name, err)
		}
		if text != "" {
			slides = append(slides, text)
		}
	}

	doc := normalisers.NewDocument(raw, normalisers.CoreTitle(reader), strings.Join(slides, "\n\n"), "pptx")
	doc.Metadata["slides"] = len(slides)
	return doc, nil
}

// slideText collects <a:t> runs, breaking lines at the end of each <a:p>.
func slideText(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		lines  []string
		line   strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			inText = t.Name.Local == "t"
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if s := strings.TrimSpace(line.String()); s != "" {
					lines = append(lines, s)
				}
				line.Reset()
			}
		case xml.CharData:
			if inText {
				line.Write(t)
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
