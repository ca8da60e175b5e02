package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers"
)

// Google Workspace MIME types.
const (
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypeFolder       = "application/vnd.google-apps.folder"
	MimeTypeGoogleApps   = "application/vnd.google-apps."
)

// Export formats for Google Workspace files.
const (
	ExportMimeText = "text/plain"
	ExportMimeCSV  = "text/csv"
)

// MaxDownloadSize caps downloads and exports (Drive refuses exports above 10MB).
const MaxDownloadSize = 20 * 1024 * 1024

// exportFormats maps exportable Workspace types to their text export.
var exportFormats = map[string]string{
	MimeTypeGoogleDoc:    ExportMimeText,
	MimeTypeGoogleSheet:  ExportMimeCSV,
	MimeTypeGoogleSlides: ExportMimeText,
}

// listFields is the partial response selector for file listings.
const listFields = "nextPageToken, files(id, name, mimeType, modifiedTime, size, webViewLink, trashed)"

// ShouldSyncFile reports whether a listed file is indexable. Folders,
// trashed files and Workspace types without a text export are skipped.
func ShouldSyncFile(file *drive.File) bool {
	if file.Trashed || file.MimeType == MimeTypeFolder {
		return false
	}
	if strings.HasPrefix(file.MimeType, MimeTypeGoogleApps) {
		_, ok := exportFormats[file.MimeType]
		return ok
	}
	return true
}

// toRemoteDocument converts a listed file. The token is the modification
// time, which Drive bumps on every content or metadata change.
func toRemoteDocument(file *drive.File) domain.RemoteDocument {
	mimeType := file.MimeType
	if mimeType == "" || mimeType == normalisers.OctetStream {
		mimeType = normalisers.DetectMIMEType(file.Name)
	}
	return domain.RemoteDocument{
		ID:       file.Id,
		Token:    file.ModifiedTime,
		Name:     file.Name,
		URL:      webURL(file.Id, file.WebViewLink),
		MIMEType: mimeType,
		Size:     file.Size,
	}
}

// fetchFileContent downloads a file, exporting Workspace files to text.
// Returns the content and its MIME type.
func fetchFileContent(ctx context.Context, svc *drive.Service, doc domain.RemoteDocument, limit int64) ([]byte, string, error) {
	var (
		resp     *http.Response
		err      error
		mimeType = doc.MIMEType
	)

	if export, ok := exportFormats[doc.MIMEType]; ok {
		resp, err = svc.Files.Export(doc.ID, export).Context(ctx).Download()
		mimeType = export
	} else {
		resp, err = svc.Files.Get(doc.ID).SupportsAllDrives(true).Context(ctx).Download()
	}
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("read content: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("%w: content exceeds %d bytes", domain.ErrInvalidInput, limit)
	}
	return data, mimeType, nil
}
