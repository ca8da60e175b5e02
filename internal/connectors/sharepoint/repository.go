package sharepoint

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers"
)

// Ensure Repository implements the interface.
var (
	_ driven.RemoteRepository    = (*Repository)(nil)
	_ driven.SubscriptionManager = (*Repository)(nil)
)

// childrenSelect limits listing payloads to the fields we read.
const childrenSelect = "id,name,webUrl,lastModifiedDateTime,size,file,folder"

// pageSize is the $top value for children requests.
const pageSize = 200

type site struct {
	ID     string `json:"id"`
	WebURL string `json:"webUrl"`
}

type drive struct {
	ID string `json:"id"`
}

type driveItem struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	WebURL               string `json:"webUrl"`
	LastModifiedDateTime string `json:"lastModifiedDateTime"`
	Size                 int64  `json:"size"`
	File                 *struct {
		MimeType string `json:"mimeType"`
	} `json:"file"`
	Folder *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder"`
}

type itemPage struct {
	Value    []driveItem `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// Repository lists and fetches the files of a site's default document library.
type Repository struct {
	client *Client
	config *Config

	mu      sync.Mutex
	driveID string
	closed  bool
}

// New creates a SharePoint repository remote.
func New(client *Client, cfg *Config) *Repository {
	return &Repository{client: client, config: cfg}
}

// Type returns the source type identifier.
func (r *Repository) Type() string {
	return domain.SourceSharePoint
}

// DriveID resolves and caches the site's default drive id.
func (r *Repository) DriveID(ctx context.Context) (string, error) {
	if err := r.checkOpen(); err != nil {
		return "", err
	}

	r.mu.Lock()
	cached := r.driveID
	r.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	sitePath, err := r.config.sitePath()
	if err != nil {
		return "", err
	}

	var s site
	if err := r.client.getJSON(ctx, sitePath, &s); err != nil {
		return "", fmt.Errorf("resolve site %s: %w", r.config.SiteURL, err)
	}

	var d drive
	if err := r.client.getJSON(ctx, "/sites/"+url.PathEscape(s.ID)+"/drive", &d); err != nil {
		return "", fmt.Errorf("resolve drive of site %s: %w", s.ID, err)
	}
	if d.ID == "" {
		return "", fmt.Errorf("site %s has no default drive", s.ID)
	}

	logger.Debug("sharepoint: site %s uses drive %s", s.ID, d.ID)

	r.mu.Lock()
	r.driveID = d.ID
	r.mu.Unlock()
	return d.ID, nil
}

// ListDocuments walks every folder of the drive and returns its files.
func (r *Repository) ListDocuments(ctx context.Context) ([]domain.RemoteDocument, error) {
	driveID, err := r.DriveID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransientFetch, err)
	}

	var docs []domain.RemoteDocument
	folders := []string{"root"}
	for len(folders) > 0 {
		folder := folders[0]
		folders = folders[1:]

		next := fmt.Sprintf("/drives/%s/items/%s/children?$select=%s&$top=%d",
			url.PathEscape(driveID), url.PathEscape(folder), childrenSelect, pageSize)
		for next != "" {
			var page itemPage
			if err := r.client.getJSON(ctx, next, &page); err != nil {
				return nil, fmt.Errorf("%w: list folder %s: %w", domain.ErrTransientFetch, folder, err)
			}

			for _, item := range page.Value {
				switch {
				case item.Folder != nil:
					folders = append(folders, item.ID)
				case item.File != nil:
					docs = append(docs, item.remoteDocument())
				}
			}
			next = page.NextLink
		}
	}

	logger.Debug("sharepoint: listed %d files", len(docs))
	return docs, nil
}

func (item driveItem) remoteDocument() domain.RemoteDocument {
	mimeType := normalisers.BaseMIMEType(item.File.MimeType)
	if mimeType == "" || mimeType == normalisers.OctetStream {
		mimeType = normalisers.DetectMIMEType(item.Name)
	}
	return domain.RemoteDocument{
		ID:       item.ID,
		Token:    item.LastModifiedDateTime,
		Name:     item.Name,
		URL:      item.WebURL,
		MIMEType: mimeType,
		Size:     item.Size,
	}
}

// FetchContent downloads the file's current content.
func (r *Repository) FetchContent(ctx context.Context, doc domain.RemoteDocument) (*domain.RawDocument, error) {
	driveID, err := r.DriveID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransientFetch, err)
	}

	target := fmt.Sprintf("/drives/%s/items/%s/content", url.PathEscape(driveID), url.PathEscape(doc.ID))
	content, err := r.client.download(ctx, target, MaxDownloadSize)
	switch {
	case IsNotFound(err):
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrNotFound, doc.ID, err)
	case errors.Is(err, domain.ErrInvalidInput):
		// Oversized files are a per-document failure, not a fetch outage.
		return nil, fmt.Errorf("%s: %w", doc.ID, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrTransientFetch, doc.ID, err)
	}

	return &domain.RawDocument{
		DocumentID: doc.ID,
		URI:        doc.URL,
		Name:       doc.Name,
		MIMEType:   doc.MIMEType,
		Content:    content,
		Metadata: map[string]any{
			"drive_id":      driveID,
			"last_modified": doc.Token,
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
		return errors.New("sharepoint: repository closed")
	}
	return nil
}
