package domain

// RemoteDocument is one entry of a point-in-time remote listing.
type RemoteDocument struct {
	// ID is the stable, source-assigned document identity.
	ID string

	// Token is the opaque change token (e.g. last-modified timestamp).
	// Tokens are compared for equality only.
	Token string

	// Name is the human-readable display name.
	Name string

	// URL is the canonical location of the document.
	URL string

	// MIMEType is the content type reported by the source, if any.
	MIMEType string

	// Size is the content length in bytes, 0 when unknown.
	Size int64
}

// RawDocument represents opaque bytes fetched for a remote document.
// It is the repository's output before normalisation.
type RawDocument struct {
	// DocumentID is the owning document identity.
	DocumentID string

	// URI is the canonical location of the document.
	URI string

	// Name is the display name, used for titles and type detection.
	Name string

	// MIMEType is the content type (e.g., "text/plain").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains repository-specific key-value pairs.
	Metadata map[string]any
}

// Document is the normalised text form of a raw document.
type Document struct {
	// ID is the owning document identity.
	ID string

	// URI is the canonical location of the document.
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text content after normalisation.
	Content string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any
}

// Chunk is a unit of derived content owned by exactly one document identity.
// A document's chunks are replaced as a whole, never updated individually.
type Chunk struct {
	// ID is generated fresh for every pass and never reused.
	ID string

	// DocumentID is the owning document identity.
	DocumentID string

	// Content is the text span of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation, nil when embedding is disabled.
	Embedding []float32

	// SourceURL is the canonical URL of the owning document.
	SourceURL string

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}
