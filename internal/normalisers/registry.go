package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps MIME types to normalisers.
type Registry struct {
	mu     sync.RWMutex
	byMIME map[string][]driven.Normaliser
}

// NewRegistry creates a registry pre-populated with the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{byMIME: make(map[string][]driven.Normaliser)}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser for each MIME type it supports.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mimeType := range n.SupportedMIMETypes() {
		list := append(r.byMIME[mimeType], n)
		sort.SliceStable(list, func(i, j int) bool { return list[i].Priority() > list[j].Priority() })
		r.byMIME[mimeType] = list
	}
}

// Normalise runs the highest-priority normaliser for the document's MIME type.
// The MIME type is detected from the name when the source did not report one.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	mimeType := BaseMIMEType(raw.MIMEType)
	if mimeType == "" || mimeType == OctetStream {
		mimeType = DetectMIMEType(raw.Name)
	}

	r.mu.RLock()
	candidates := r.byMIME[mimeType]
	r.mu.RUnlock()

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}

	typed := *raw
	typed.MIMEType = mimeType
	return candidates[0].Normalise(ctx, &typed)
}

// SupportedMIMETypes returns every registered MIME type, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for t := range r.byMIME {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
