package domain

import "time"

// Source types.
const (
	SourceSharePoint  = "sharepoint"
	SourceFilesystem  = "filesystem"
	SourceGitHub      = "github"
	SourceGoogleDrive = "gdrive"
)

// Settings holds typed application settings.
type Settings struct {
	// DataDir holds the sqlite database.
	DataDir string

	// SourceType selects the remote repository implementation.
	SourceType string

	Sync       SyncSettings
	Chunker    ChunkerSettings
	Server     ServerSettings
	Embedding  EmbeddingSettings
	SharePoint SharePointSettings
	Filesystem FilesystemSettings
	GitHub     GitHubSettings
	Drive      DriveSettings
}

// SyncSettings configures the pass runner and run controller.
type SyncSettings struct {
	// Workers bounds concurrent per-document pipeline invocations.
	Workers int

	// DocumentTimeout bounds one document's fetch/parse/chunk/embed.
	DocumentTimeout time.Duration

	// CooldownMargin is added to the last pass duration to size the cooldown.
	CooldownMargin time.Duration

	// Interval is the periodic trigger interval. Zero disables it.
	Interval time.Duration
}

// ChunkerSettings configures text chunking.
type ChunkerSettings struct {
	Size    int
	Overlap int
}

// ServerSettings configures the webhook receiver.
type ServerSettings struct {
	Addr string

	// ClientState, when set, must be carried by change notifications.
	ClientState string
}

// EmbeddingSettings configures the embedding service.
type EmbeddingSettings struct {
	APIKey  string
	BaseURL string
	Model   string
}

// SharePointSettings configures the Microsoft Graph repository.
type SharePointSettings struct {
	TenantID        string
	ClientID        string
	ClientSecret    string
	SiteURL         string
	NotificationURL string
}

// FilesystemSettings configures the local directory repository.
type FilesystemSettings struct {
	Root  string
	Watch bool
}

// GitHubSettings configures the GitHub repository.
type GitHubSettings struct {
	Token  string
	Owner  string
	Repo   string
	Branch string

	// FilePatterns is a comma-separated list of globs; empty means all files.
	FilePatterns string
}

// DriveSettings configures the Google Drive repository.
type DriveSettings struct {
	CredentialsFile string
	FolderID        string
}

// DefaultSettings returns sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		SourceType: SourceSharePoint,
		Sync: SyncSettings{
			Workers:         4,
			DocumentTimeout: 2 * time.Minute,
			CooldownMargin:  5 * time.Second,
			Interval:        time.Hour,
		},
		Chunker: ChunkerSettings{
			Size:    1000,
			Overlap: 200,
		},
		Server: ServerSettings{
			Addr: ":8000",
		},
	}
}
