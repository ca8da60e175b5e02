package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers"
)

// Ensure Repository implements the interface.
var _ driven.RemoteRepository = (*Repository)(nil)

// Repository lists and fetches the files of one repository branch.
type Repository struct {
	client *Client
	config *Config

	mu     sync.Mutex
	branch string
	closed bool
}

// New creates a GitHub repository remote.
func New(client *Client, cfg *Config) *Repository {
	return &Repository{
		client: client,
		config: cfg,
		branch: cfg.Branch,
	}
}

// Type returns the source type identifier.
func (r *Repository) Type() string {
	return domain.SourceGitHub
}

// ListDocuments returns every indexable blob on the branch head.
func (r *Repository) ListDocuments(ctx context.Context) ([]domain.RemoteDocument, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	branch, err := r.resolveBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve branch: %w", domain.ErrTransientFetch, err)
	}

	tree, err := r.client.GetTree(ctx, r.config.Owner, r.config.Repo, branch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransientFetch, err)
	}
	if tree.GetTruncated() {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransientFetch, ErrTruncatedTree)
	}

	docs := make([]domain.RemoteDocument, 0, len(tree.Entries))
	skipped := 0
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}

		p := entry.GetPath()
		if !matchesPatterns(p, r.config.FilePatterns) || isBinaryExtension(p) ||
			int64(entry.GetSize()) > r.config.MaxFileSize {
			skipped++
			continue
		}

		docs = append(docs, domain.RemoteDocument{
			ID:       p,
			Token:    entry.GetSHA(),
			Name:     path.Base(p),
			URL:      blobWebURL(r.config.Owner, r.config.Repo, branch, p),
			MIMEType: normalisers.DetectMIMEType(p),
			Size:     int64(entry.GetSize()),
		})
	}

	logger.Debug("github: listed %d files in %s/%s@%s (%d skipped)",
		len(docs), r.config.Owner, r.config.Repo, branch, skipped)
	return docs, nil
}

// FetchContent downloads the blob named by the document's token.
func (r *Repository) FetchContent(ctx context.Context, doc domain.RemoteDocument) (*domain.RawDocument, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	blob, err := r.client.GetBlob(ctx, r.config.Owner, r.config.Repo, doc.Token)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrNotFound, doc.ID, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrTransientFetch, doc.ID, err)
	}

	content, err := decodeBlob(blob.GetContent(), blob.GetEncoding())
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrTransientFetch, doc.ID, err)
	}

	r.mu.Lock()
	branch := r.branch
	r.mu.Unlock()

	return &domain.RawDocument{
		DocumentID: doc.ID,
		URI:        doc.URL,
		Name:       doc.Name,
		MIMEType:   doc.MIMEType,
		Content:    content,
		Metadata: map[string]any{
			"owner":  r.config.Owner,
			"repo":   r.config.Repo,
			"branch": branch,
			"path":   doc.ID,
			"sha":    doc.Token,
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
		return errors.New("github: repository closed")
	}
	return nil
}

// resolveBranch returns the configured branch, looking up the default
// branch once when none is configured.
func (r *Repository) resolveBranch(ctx context.Context) (string, error) {
	r.mu.Lock()
	branch := r.branch
	r.mu.Unlock()
	if branch != "" {
		return branch, nil
	}

	repo, err := r.client.GetRepository(ctx, r.config.Owner, r.config.Repo)
	if err != nil {
		return "", err
	}
	branch = repo.GetDefaultBranch()
	if branch == "" {
		return "", fmt.Errorf("%s/%s has no default branch", r.config.Owner, r.config.Repo)
	}

	r.mu.Lock()
	r.branch = branch
	r.mu.Unlock()
	return branch, nil
}

// decodeBlob decodes blob content according to its encoding.
func decodeBlob(content, encoding string) ([]byte, error) {
	if encoding == "base64" {
		// GitHub wraps base64 content at 60 columns.
		return base64.StdEncoding.DecodeString(strings.ReplaceAll(content, "\n", ""))
	}
	return []byte(content), nil
}

// matchesPatterns checks if a path matches any of the glob patterns.
func matchesPatterns(p string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}

	for _, pattern := range patterns {
		if matched, err := filepath.Match(pattern, path.Base(p)); err == nil && matched {
			return true
		}
		// Also try matching against full path
		if matched, err := filepath.Match(pattern, p); err == nil && matched {
			return true
		}
	}
	return false
}

// binaryExts lists extensions no normaliser can read. Office Open XML
// formats are absent because they are parsed.
var binaryExts = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".7z": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true, ".webp": true,
	".pdf": true, ".doc": true, ".xls": true, ".ppt": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".bin": true, ".dat": true, ".db": true, ".sqlite": true,
	".pyc": true, ".pyo": true, ".class": true, ".o": true, ".a": true,
}

// isBinaryExtension checks if a file extension indicates a binary file.
func isBinaryExtension(p string) bool {
	return binaryExts[strings.ToLower(path.Ext(p))]
}
