package drive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/sab110/Sharepoint-RAG/internal/connectors/google"
	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

// Ensure Repository implements the interface.
var _ driven.RemoteRepository = (*Repository)(nil)

// Repository lists and fetches Google Drive files.
type Repository struct {
	svc         *drive.Service
	config      *Config
	rateLimiter *google.RateLimiter

	mu     sync.Mutex
	closed bool
}

// New creates a Drive repository remote.
func New(svc *drive.Service, cfg *Config, limiter *google.RateLimiter) *Repository {
	if limiter == nil {
		limiter = google.NewDriveRateLimiter()
	}
	return &Repository{svc: svc, config: cfg, rateLimiter: limiter}
}

// Type returns the source type identifier.
func (r *Repository) Type() string {
	return domain.SourceGoogleDrive
}

// ListDocuments lists every indexable file, walking the configured folder
// tree when one is set.
func (r *Repository) ListDocuments(ctx context.Context) ([]domain.RemoteDocument, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	var docs []domain.RemoteDocument
	collect := func(file *drive.File) {
		if ShouldSyncFile(file) {
			docs = append(docs, toRemoteDocument(file))
		}
	}

	if r.config.FolderID == "" {
		if err := r.listQuery(ctx, "trashed = false", collect); err != nil {
			return nil, err
		}
		logger.Debug("gdrive: listed %d files", len(docs))
		return docs, nil
	}

	// Folders reachable through several parents are visited once.
	seen := map[string]bool{r.config.FolderID: true}
	folders := []string{r.config.FolderID}
	for len(folders) > 0 {
		folder := folders[0]
		folders = folders[1:]

		q := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(folder))
		err := r.listQuery(ctx, q, func(file *drive.File) {
			if file.MimeType == MimeTypeFolder {
				if !seen[file.Id] {
					seen[file.Id] = true
					folders = append(folders, file.Id)
				}
				return
			}
			collect(file)
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("gdrive: listed %d files below folder %s", len(docs), r.config.FolderID)
	return docs, nil
}

// listQuery pages through a files.list query.
func (r *Repository) listQuery(ctx context.Context, q string, fn func(*drive.File)) error {
	pageToken := ""
	for {
		if err := r.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limit wait: %w", domain.ErrTransientFetch, err)
		}

		call := r.svc.Files.List().
			Q(q).
			PageSize(r.config.PageSize).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Fields(googleapi.Field(listFields)).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		list, err := call.Do()
		if err != nil {
			r.noteRateLimit(err)
			return fmt.Errorf("%w: list files: %w", domain.ErrTransientFetch, err)
		}
		for _, file := range list.Files {
			fn(file)
		}

		if list.NextPageToken == "" {
			return nil
		}
		pageToken = list.NextPageToken
	}
}

// FetchContent downloads a file, exporting Google Docs, Sheets and Slides
// to text.
func (r *Repository) FetchContent(ctx context.Context, doc domain.RemoteDocument) (*domain.RawDocument, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	if err := r.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %w", domain.ErrTransientFetch, err)
	}

	content, mimeType, err := fetchFileContent(ctx, r.svc, doc, r.config.MaxDownloadSize)
	switch {
	case google.IsNotFound(err):
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrNotFound, doc.ID, err)
	case errors.Is(err, domain.ErrInvalidInput):
		return nil, fmt.Errorf("%s: %w", doc.ID, err)
	case err != nil:
		r.noteRateLimit(err)
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrTransientFetch, doc.ID, err)
	}

	return &domain.RawDocument{
		DocumentID: doc.ID,
		URI:        doc.URL,
		Name:       doc.Name,
		MIMEType:   mimeType,
		Content:    content,
		Metadata: map[string]any{
			"file_id":       doc.ID,
			"source_mime":   doc.MIMEType,
			"modified_time": doc.Token,
		},
	}, nil
}

// Close marks the repository closed.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *Repository) checkOpen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errors.New("gdrive: repository closed")
	}
	return nil
}

// noteRateLimit starts a backoff window after a throttling response.
func (r *Repository) noteRateLimit(err error) {
	if google.IsRateLimited(err) {
		r.rateLimiter.RecordRateLimitError(0)
	}
}

// escapeQuery escapes a value for a single-quoted Drive query literal.
func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
