package normalisers

import (
	"mime"
	"path/filepath"
	"strings"
)

// OctetStream is the MIME type for opaque bytes.
const OctetStream = "application/octet-stream"

// extMIMETypes maps file extensions to MIME types for common types not in Go's registry.
var extMIMETypes = map[string]string{
	".txt": "text/plain", ".log": "text/plain", ".csv": "text/csv",
	".md": "text/markdown", ".markdown": "text/markdown",
	".htm": "text/html", ".html": "text/html",
	".json": "application/json", ".xml": "application/xml",
	".yaml": "text/yaml", ".yml": "text/yaml", ".toml": "text/toml",
	".go": "text/x-go", ".py": "text/x-python", ".rs": "text/x-rust",
	".ts": "text/typescript", ".sql": "text/x-sql", ".sh": "text/x-shellscript",
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// DetectMIMEType determines the MIME type from a file name's extension.
// Unknown extensions are treated as opaque bytes.
func DetectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return OctetStream
	}

	// Custom mappings first; Go's table returns video/mp2t for .ts.
	if t, ok := extMIMETypes[ext]; ok {
		return t
	}

	if t := BaseMIMEType(mime.TypeByExtension(ext)); t != "" {
		return t
	}
	return OctetStream
}

// BaseMIMEType strips parameters such as charset from a MIME type.
func BaseMIMEType(mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = mimeType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
