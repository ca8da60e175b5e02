package drive

import (
	"fmt"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// Config holds Google Drive connector configuration.
type Config struct {
	// CredentialsFile is the service account JSON key.
	CredentialsFile string

	// FolderID limits indexing to one folder tree. Empty indexes every
	// file the service account can see.
	FolderID string

	// PageSize is the page size for list requests.
	PageSize int64

	// MaxDownloadSize caps a single download or export.
	MaxDownloadSize int64
}

// ParseConfig builds a Config from Drive settings.
func ParseConfig(s domain.DriveSettings) (*Config, error) {
	if s.CredentialsFile == "" {
		return nil, fmt.Errorf("%w: gdrive.credentials_file is required", domain.ErrNotConfigured)
	}
	return &Config{
		CredentialsFile: s.CredentialsFile,
		FolderID:        s.FolderID,
		PageSize:        100,
		MaxDownloadSize: MaxDownloadSize,
	}, nil
}
