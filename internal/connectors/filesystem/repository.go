package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers"
)

// MaxFileSize skips larger files.
const MaxFileSize = 64 * 1024 * 1024

// Ensure Repository implements the interfaces.
var (
	_ driven.RemoteRepository = (*Repository)(nil)
	_ driven.Notifier         = (*Repository)(nil)
)

// Repository lists and reads the files below a root directory.
type Repository struct {
	root string

	mu       sync.Mutex
	closed   bool
	watchers map[*watcher]struct{}
}

// New creates a filesystem repository rooted at root.
func New(root string) *Repository {
	return &Repository{
		root:     filepath.Clean(root),
		watchers: make(map[*watcher]struct{}),
	}
}

// Type returns the source type identifier.
func (r *Repository) Type() string {
	return domain.SourceFilesystem
}

// Root returns the cleaned root directory.
func (r *Repository) Root() string {
	return r.root
}

// ListDocuments walks the root and returns every regular, visible file.
func (r *Repository) ListDocuments(ctx context.Context) ([]domain.RemoteDocument, error) {
	if err := r.checkRoot(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransientFetch, err)
	}

	var docs []domain.RemoteDocument
	err := filepath.WalkDir(r.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if p != r.root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if errors.Is(err, fs.ErrNotExist) {
			// Removed mid-walk.
			return nil
		}
		if err != nil {
			return err
		}
		if info.Size() > MaxFileSize {
			return nil
		}

		rel, err := filepath.Rel(r.root, p)
		if err != nil {
			return err
		}

		docs = append(docs, domain.RemoteDocument{
			ID:       filepath.ToSlash(rel),
			Token:    fileToken(info),
			Name:     d.Name(),
			URL:      fileURL(p),
			MIMEType: normalisers.DetectMIMEType(d.Name()),
			Size:     info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walk %s: %w", domain.ErrTransientFetch, r.root, err)
	}
	return docs, nil
}

// FetchContent reads the file named by the document identity.
func (r *Repository) FetchContent(ctx context.Context, doc domain.RemoteDocument) (*domain.RawDocument, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := r.resolve(doc.ID)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, doc.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrTransientFetch, doc.ID, err)
	}

	name := path.Base(doc.ID)
	return &domain.RawDocument{
		DocumentID: doc.ID,
		URI:        fileURL(p),
		Name:       name,
		MIMEType:   normalisers.DetectMIMEType(name),
		Content:    content,
		Metadata: map[string]any{
			"path":      p,
			"filename":  name,
			"extension": strings.TrimPrefix(path.Ext(name), "."),
		},
	}, nil
}

// Close stops all watchers and marks the repository closed.
func (r *Repository) Close() error {
	r.mu.Lock()
	r.closed = true
	watchers := make([]*watcher, 0, len(r.watchers))
	for w := range r.watchers {
		watchers = append(watchers, w)
	}
	r.mu.Unlock()

	var errs []error
	for _, w := range watchers {
		errs = append(errs, w.close())
	}
	return errors.Join(errs...)
}

// resolve maps a document identity to a path inside the root.
func (r *Repository) resolve(id string) (string, error) {
	if id == "" || !filepath.IsLocal(filepath.FromSlash(id)) {
		return "", fmt.Errorf("%w: path %q escapes the root", domain.ErrInvalidInput, id)
	}
	return filepath.Join(r.root, filepath.FromSlash(id)), nil
}

func (r *Repository) checkOpen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errors.New("filesystem: repository closed")
	}
	return nil
}

// checkRoot verifies the root is an existing directory.
func (r *Repository) checkRoot() error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	info, err := os.Stat(r.root)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", r.root)
	}
	return nil
}

// fileToken combines modification time and size.
func fileToken(info fs.FileInfo) string {
	return strconv.FormatInt(info.ModTime().UnixNano(), 10) + "-" + strconv.FormatInt(info.Size(), 10)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
