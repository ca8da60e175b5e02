package driven

import (
	"context"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// RemoteRepository enumerates and fetches documents from the remote corpus.
// Each source type (sharepoint, filesystem, github, gdrive) implements it.
type RemoteRepository interface {
	// Type returns the source type identifier.
	Type() string

	// ListDocuments returns a point-in-time listing of the corpus.
	// Errors are wrapped in domain.ErrTransientFetch; a partial listing is
	// never returned together with a nil error.
	ListDocuments(ctx context.Context) ([]domain.RemoteDocument, error)

	// FetchContent downloads the raw bytes of one listed document.
	// Returns domain.ErrNotFound when the document vanished after listing.
	FetchContent(ctx context.Context, doc domain.RemoteDocument) (*domain.RawDocument, error)

	// Close releases resources.
	Close() error
}

// Notifier is implemented by repositories that can push change hints.
type Notifier interface {
	// Watch calls notify for every observed change until ctx is cancelled.
	Watch(ctx context.Context, notify func()) error
}
