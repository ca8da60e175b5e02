// Package docx provides a Normaliser for Word documents.
package docx

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts paragraph text from word/document.xml.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := normalisers.OpenOOXML(raw.Content)
	if err != nil {
		return nil, err
	}

	body, err := normalisers.ReadPart(reader, "word/document.xml")
	if err != nil {
		return nil, err
	}

	content, err := parseDocumentXML(body)
	if err != nil {
		return nil, err
	}

	return normalisers.NewDocument(raw, normalisers.CoreTitle(reader), content, "docx"), nil
}

// documentXML represents the structure of word/document.xml.
// Table rows become tab-separated lines after the body paragraphs.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
		Tables     []table     `xml:"tbl"`
	} `xml:"body"`
}

type table struct {
	Rows []struct {
		Cells []struct {
			Paragraphs []paragraph `xml:"p"`
		} `xml:"tc"`
	} `xml:"tr"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []string `xml:"t"`
}

// parseDocumentXML extracts text content from the document XML.
func parseDocumentXML(content []byte) (string, error) {
	if len(content) == 0 {
		return "", nil
	}

	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("%w: parsing document.xml: %w", domain.ErrInvalidInput, err)
	}

	var lines []string
	for _, para := range doc.Body.Paragraphs {
		lines = append(lines, para.text())
	}
	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				var parts []string
				for _, p := range cell.Paragraphs {
					parts = append(parts, p.text())
				}
				cells = append(cells, strings.Join(parts, " "))
			}
			lines = append(lines, strings.Join(cells, "\t"))
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func (p paragraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			b.WriteString(t)
		}
	}
	return b.String()
}
