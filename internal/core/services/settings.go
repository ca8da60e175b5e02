package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyDataDir           = "data_dir"
	KeySourceType        = "source.type"
	KeySyncWorkers       = "sync.workers"
	KeySyncDocTimeout    = "sync.document_timeout"
	KeySyncCooldown      = "sync.cooldown_margin"
	KeySyncInterval      = "sync.interval"
	KeyChunkerSize       = "chunker.size"
	KeyChunkerOverlap    = "chunker.overlap"
	KeyServerAddr        = "server.addr"
	KeyClientState       = "server.client_state"
	KeyEmbedAPIKey       = "embedding.api_key"
	KeyEmbedBaseURL      = "embedding.base_url"
	KeyEmbedModel        = "embedding.model"
	KeySPTenantID        = "sharepoint.tenant_id"
	KeySPClientID        = "sharepoint.client_id"
	KeySPClientSecret    = "sharepoint.client_secret"
	KeySPSiteURL         = "sharepoint.site_url"
	KeySPNotificationURL = "sharepoint.notification_url"
	KeyFSRoot            = "filesystem.root"
	KeyFSWatch           = "filesystem.watch"
	KeyGitHubToken       = "github.token"
	KeyGitHubOwner       = "github.owner"
	KeyGitHubRepo        = "github.repo"
	KeyGitHubBranch      = "github.branch"
	KeyGitHubPatterns    = "github.file_patterns"
	KeyDriveCredentials  = "gdrive.credentials_file"
	KeyDriveFolderID     = "gdrive.folder_id"
)

// SettingKeys returns every recognised config key in display order.
func SettingKeys() []string {
	return []string{
		KeySourceType, KeyDataDir,
		KeySyncWorkers, KeySyncDocTimeout, KeySyncCooldown, KeySyncInterval,
		KeyChunkerSize, KeyChunkerOverlap,
		KeyServerAddr, KeyClientState,
		KeyEmbedAPIKey, KeyEmbedBaseURL, KeyEmbedModel,
		KeySPTenantID, KeySPClientID, KeySPClientSecret, KeySPSiteURL, KeySPNotificationURL,
		KeyFSRoot, KeyFSWatch,
		KeyGitHubToken, KeyGitHubOwner, KeyGitHubRepo, KeyGitHubBranch, KeyGitHubPatterns,
		KeyDriveCredentials, KeyDriveFolderID,
	}
}

// IsSecretKey reports whether a key holds a credential that must not be echoed.
func IsSecretKey(key string) bool {
	switch key {
	case KeyClientState, KeyEmbedAPIKey, KeySPClientSecret, KeyGitHubToken:
		return true
	default:
		return false
	}
}

// envPrefix prefixes environment overrides: sharepoint.client_secret is
// read from SPRAG_SHAREPOINT_CLIENT_SECRET.
const envPrefix = "SPRAG_"

// EnvKey returns the environment variable that overrides a config key.
func EnvKey(key string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// settingsReader resolves keys from the environment first, then the store.
type settingsReader struct {
	store  driven.ConfigStore
	getenv func(string) string
	errs   []error
}

// LoadSettings reads typed settings from the config store, applying
// environment overrides and defaults.
func LoadSettings(store driven.ConfigStore) (domain.Settings, error) {
	return loadSettings(store, os.Getenv)
}

func loadSettings(store driven.ConfigStore, getenv func(string) string) (domain.Settings, error) {
	r := &settingsReader{store: store, getenv: getenv}
	d := domain.DefaultSettings()

	settings := domain.Settings{
		DataDir:    r.path(KeyDataDir, d.DataDir),
		SourceType: strings.ToLower(r.string(KeySourceType, d.SourceType)),
		Sync: domain.SyncSettings{
			Workers:         r.int(KeySyncWorkers, d.Sync.Workers),
			DocumentTimeout: r.duration(KeySyncDocTimeout, d.Sync.DocumentTimeout),
			CooldownMargin:  r.duration(KeySyncCooldown, d.Sync.CooldownMargin),
			Interval:        r.duration(KeySyncInterval, d.Sync.Interval),
		},
		Chunker: domain.ChunkerSettings{
			Size:    r.int(KeyChunkerSize, d.Chunker.Size),
			Overlap: r.int(KeyChunkerOverlap, d.Chunker.Overlap),
		},
		Server: domain.ServerSettings{
			Addr:        r.string(KeyServerAddr, d.Server.Addr),
			ClientState: r.string(KeyClientState, ""),
		},
		Embedding: domain.EmbeddingSettings{
			APIKey:  r.string(KeyEmbedAPIKey, ""),
			BaseURL: r.string(KeyEmbedBaseURL, ""),
			Model:   r.string(KeyEmbedModel, ""),
		},
		SharePoint: domain.SharePointSettings{
			TenantID:        r.string(KeySPTenantID, ""),
			ClientID:        r.string(KeySPClientID, ""),
			ClientSecret:    r.string(KeySPClientSecret, ""),
			SiteURL:         r.string(KeySPSiteURL, ""),
			NotificationURL: r.string(KeySPNotificationURL, ""),
		},
		Filesystem: domain.FilesystemSettings{
			Root:  r.path(KeyFSRoot, ""),
			Watch: r.bool(KeyFSWatch, false),
		},
		GitHub: domain.GitHubSettings{
			Token:        r.string(KeyGitHubToken, ""),
			Owner:        r.string(KeyGitHubOwner, ""),
			Repo:         r.string(KeyGitHubRepo, ""),
			Branch:       r.string(KeyGitHubBranch, ""),
			FilePatterns: r.string(KeyGitHubPatterns, ""),
		},
		Drive: domain.DriveSettings{
			CredentialsFile: r.path(KeyDriveCredentials, ""),
			FolderID:        r.string(KeyDriveFolderID, ""),
		},
	}

	switch settings.SourceType {
	case domain.SourceSharePoint, domain.SourceFilesystem, domain.SourceGitHub, domain.SourceGoogleDrive:
	default:
		r.fail(KeySourceType, fmt.Errorf("unknown source type %q", settings.SourceType))
	}
	if settings.Sync.Workers <= 0 {
		r.fail(KeySyncWorkers, fmt.Errorf("must be positive, got %d", settings.Sync.Workers))
	}
	if settings.Chunker.Size <= 0 {
		r.fail(KeyChunkerSize, fmt.Errorf("must be positive, got %d", settings.Chunker.Size))
	}
	if settings.Chunker.Overlap < 0 || settings.Chunker.Overlap >= settings.Chunker.Size {
		r.fail(KeyChunkerOverlap, fmt.Errorf("must be in [0, %d), got %d", settings.Chunker.Size, settings.Chunker.Overlap))
	}

	if len(r.errs) > 0 {
		return settings, r.err()
	}
	return settings, nil
}

func (r *settingsReader) fail(key string, err error) {
	r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
}

func (r *settingsReader) err() error {
	msgs := make([]string, len(r.errs))
	for i, e := range r.errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

// raw returns the override or stored value and whether either exists.
func (r *settingsReader) raw(key string) (any, bool) {
	if v := r.getenv(EnvKey(key)); v != "" {
		return v, true
	}
	if r.store == nil {
		return nil, false
	}
	return r.store.Get(key)
}

func (r *settingsReader) string(key, def string) string {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return def
	}
	return s
}

func (r *settingsReader) path(key, def string) string {
	p := r.string(key, def)
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}

func (r *settingsReader) int(key string, def int) int {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			r.fail(key, err)
			return def
		}
		return i
	default:
		r.fail(key, fmt.Errorf("expected integer, got %T", v))
		return def
	}
}

func (r *settingsReader) bool(key string, def bool) bool {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			r.fail(key, err)
			return def
		}
		return parsed
	default:
		r.fail(key, fmt.Errorf("expected boolean, got %T", v))
		return def
	}
}

// duration accepts Go duration strings ("90s", "2m") or whole seconds.
func (r *settingsReader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	switch d := v.(type) {
	case int:
		return time.Duration(d) * time.Second
	case int64:
		return time.Duration(d) * time.Second
	case float64:
		return time.Duration(d * float64(time.Second))
	case string:
		s := strings.TrimSpace(d)
		if secs, err := strconv.Atoi(s); err == nil {
			return time.Duration(secs) * time.Second
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			r.fail(key, err)
			return def
		}
		return parsed
	default:
		r.fail(key, fmt.Errorf("expected duration, got %T", v))
		return def
	}
}
