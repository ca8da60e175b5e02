// Package xlsx provides a Normaliser for Excel workbooks.
package xlsx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles XLSX workbooks.
type Normaliser struct{}

// New creates a new XLSX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise renders each worksheet as tab-separated rows, sheets separated by a blank line.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := normalisers.OpenOOXML(raw.Content)
	if err != nil {
		return nil, err
	}

	shared, err := readSharedStrings(reader)
	if err != nil {
		return nil, err
	}

	sheetNames := normalisers.NumberedParts(reader, "xl/worksheets/sheet", ".xml")
	var sheets []string
	for _, name := range sheetNames {
		data, err := normalisers.ReadPart(reader, name)
		if err != nil {
			return nil, err
		}
		text, err := sheetText(data, shared)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, name, err)
		}
		if text != "" {
			sheets = append(sheets, text)
		}
	}

	doc := normalisers.NewDocument(raw, normalisers.CoreTitle(reader), strings.Join(sheets, "\n\n"), "xlsx")
	doc.Metadata["sheets"] = len(sheetNames)
	return doc, nil
}

type sharedStringsXML struct {
	Items []stringItem `xml:"si"`
}

// stringItem is either plain <t> or rich text runs <r><t>.
type stringItem struct {
	Text string `xml:"t"`
	Runs []struct {
		Text string `xml:"t"`
	} `xml:"r"`
}

func (s stringItem) String() string {
	if len(s.Runs) == 0 {
		return s.Text
	}
	var b strings.Builder
	for _, r := range s.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func readSharedStrings(reader *zip.Reader) ([]string, error) {
	data, err := normalisers.ReadPart(reader, "xl/sharedStrings.xml")
	if err != nil || data == nil {
		return nil, err
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil, fmt.Errorf("%w: shared strings: %w", domain.ErrInvalidInput, err)
	}

	out := make([]string, len(sst.Items))
	for i, item := range sst.Items {
		out[i] = item.String()
	}
	return out, nil
}

type worksheetXML struct {
	Rows []struct {
		Cells []struct {
			Type   string     `xml:"t,attr"`
			Value  string     `xml:"v"`
			Inline stringItem `xml:"is"`
		} `xml:"c"`
	} `xml:"sheetData>row"`
}

// sheetText renders one worksheet. Shared-string cells (t="s") are resolved
// by index; inline strings and raw values are used as-is.
func sheetText(data []byte, shared []string) (string, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return "", err
	}

	var lines []string
	for _, row := range ws.Rows {
		cells := make([]string, 0, len(row.Cells))
		nonEmpty := false
		for _, c := range row.Cells {
			var v string
			switch c.Type {
			case "s":
				if idx, err := strconv.Atoi(strings.TrimSpace(c.Value)); err == nil && idx >= 0 && idx < len(shared) {
					v = shared[idx]
				}
			case "inlineStr":
				v = c.Inline.String()
			default:
				v = c.Value
			}
			v = strings.TrimSpace(v)
			if v != "" {
				nonEmpty = true
			}
			cells = append(cells, v)
		}
		if nonEmpty {
			lines = append(lines, strings.TrimRight(strings.Join(cells, "\t"), "\t"))
		}
	}
	return strings.Join(lines, "\n"), nil
}
