package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sab110/Sharepoint-RAG/internal/adapters/driven/storage/memory"
	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

func noEnv(string) string { return "" }

func TestLoadSettings_Defaults(t *testing.T) {
	settings, err := loadSettings(memory.NewConfigStore(nil), noEnv)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestLoadSettings_FromStore(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		KeySourceType:        "GitHub",
		KeySyncWorkers:       int64(8),
		KeySyncDocTimeout:    "90s",
		KeySyncCooldown:      int64(10),
		KeySyncInterval:      "0",
		KeyChunkerSize:       int64(500),
		KeyChunkerOverlap:    int64(50),
		KeyServerAddr:        "127.0.0.1:9000",
		KeyClientState:       "secretClientValue",
		KeyGitHubOwner:       "acme",
		KeyGitHubRepo:        "handbook",
		KeyFSWatch:           true,
		KeySPSiteURL:         "https://contoso.sharepoint.com/sites/hr",
		KeySPNotificationURL: "https://hooks.example.com/webhook",
	})

	settings, err := loadSettings(store, noEnv)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceGitHub, settings.SourceType)
	assert.Equal(t, 8, settings.Sync.Workers)
	assert.Equal(t, 90*time.Second, settings.Sync.DocumentTimeout)
	assert.Equal(t, 10*time.Second, settings.Sync.CooldownMargin)
	assert.Zero(t, settings.Sync.Interval)
	assert.Equal(t, domain.ChunkerSettings{Size: 500, Overlap: 50}, settings.Chunker)
	assert.Equal(t, "127.0.0.1:9000", settings.Server.Addr)
	assert.Equal(t, "secretClientValue", settings.Server.ClientState)
	assert.Equal(t, "acme", settings.GitHub.Owner)
	assert.Equal(t, "handbook", settings.GitHub.Repo)
	assert.True(t, settings.Filesystem.Watch)
	assert.Equal(t, "https://contoso.sharepoint.com/sites/hr", settings.SharePoint.SiteURL)
}

func TestLoadSettings_EnvOverrides(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		KeySPClientSecret: "from-file",
		KeySyncWorkers:    int64(2),
	})
	env := map[string]string{
		"SPRAG_SHAREPOINT_CLIENT_SECRET": "from-env",
		"SPRAG_SYNC_WORKERS":             "6",
		"SPRAG_FILESYSTEM_WATCH":         "true",
	}

	settings, err := loadSettings(store, func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.Equal(t, "from-env", settings.SharePoint.ClientSecret)
	assert.Equal(t, 6, settings.Sync.Workers)
	assert.True(t, settings.Filesystem.Watch)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		key    string
	}{
		{"unknown source", map[string]any{KeySourceType: "dropbox"}, KeySourceType},
		{"bad duration", map[string]any{KeySyncDocTimeout: "soon"}, KeySyncDocTimeout},
		{"zero workers", map[string]any{KeySyncWorkers: int64(0)}, KeySyncWorkers},
		{"overlap too large", map[string]any{KeyChunkerSize: int64(100), KeyChunkerOverlap: int64(100)}, KeyChunkerOverlap},
		{"wrong type", map[string]any{KeyChunkerSize: true}, KeyChunkerSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadSettings(memory.NewConfigStore(tt.values), noEnv)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadSettings_ExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	store := memory.NewConfigStore(map[string]any{KeyDataDir: "~/sprag-data"})

	settings, err := loadSettings(store, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/sprag-data", settings.DataDir)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "SPRAG_SHAREPOINT_CLIENT_SECRET", EnvKey(KeySPClientSecret))
	assert.Equal(t, "SPRAG_DATA_DIR", EnvKey(KeyDataDir))
}

func TestSettingKeys(t *testing.T) {
	keys := SettingKeys()
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
	assert.True(t, seen[KeySPClientSecret])
	assert.True(t, seen[KeyGitHubPatterns])
	assert.Equal(t, KeySourceType, keys[0])
}

func TestIsSecretKey(t *testing.T) {
	assert.True(t, IsSecretKey(KeySPClientSecret))
	assert.True(t, IsSecretKey(KeyGitHubToken))
	assert.True(t, IsSecretKey(KeyEmbedAPIKey))
	assert.False(t, IsSecretKey(KeySPSiteURL))
	assert.False(t, IsSecretKey("unknown.key"))
}
