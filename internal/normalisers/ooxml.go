package normalisers

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// maxPartSize caps a single decompressed OOXML part.
const maxPartSize = 64 << 20

// OpenOOXML opens an Office Open XML package (docx, pptx, xlsx).
func OpenOOXML(content []byte) (*zip.Reader, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not an office document: %w", domain.ErrInvalidInput, err)
	}
	return reader, nil
}

// ReadPart returns the bytes of a named part, or nil when the part is absent.
func ReadPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrInvalidInput, name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(io.LimitReader(rc, maxPartSize))
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrInvalidInput, name, err)
		}
		return data, nil
	}
	return nil, nil
}

// CoreTitle returns the title from docProps/core.xml, or "".
func CoreTitle(reader *zip.Reader) string {
	data, err := ReadPart(reader, "docProps/core.xml")
	if err != nil || data == nil {
		return ""
	}

	var core struct {
		Title string `xml:"title"`
	}
	if err := xml.Unmarshal(data, &core); err != nil {
		return ""
	}
	return strings.TrimSpace(core.Title)
}
