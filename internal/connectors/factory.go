package connectors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sab110/Sharepoint-RAG/internal/connectors/filesystem"
	"github.com/sab110/Sharepoint-RAG/internal/connectors/github"
	"github.com/sab110/Sharepoint-RAG/internal/connectors/google"
	"github.com/sab110/Sharepoint-RAG/internal/connectors/google/drive"
	"github.com/sab110/Sharepoint-RAG/internal/connectors/sharepoint"
	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.RepositoryFactory = (*Factory)(nil)

// Factory creates remote repositories from registered builders.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]driven.RepositoryBuilder
}

// NewFactory creates a factory with no builders.
func NewFactory() *Factory {
	return &Factory{builders: make(map[string]driven.RepositoryBuilder)}
}

// NewDefaultFactory creates a factory with every built-in source type.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	f.Register(domain.SourceSharePoint, BuildSharePoint)
	f.Register(domain.SourceFilesystem, BuildFilesystem)
	f.Register(domain.SourceGitHub, BuildGitHub)
	f.Register(domain.SourceGoogleDrive, BuildDrive)
	return f
}

// Register adds a builder for the given source type.
func (f *Factory) Register(sourceType string, builder driven.RepositoryBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[sourceType] = builder
}

// Create returns the repository selected by settings.SourceType.
func (f *Factory) Create(ctx context.Context, settings domain.Settings) (driven.RemoteRepository, error) {
	f.mu.RLock()
	builder, ok := f.builders[settings.SourceType]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: source type %q", domain.ErrUnsupportedType, settings.SourceType)
	}
	return builder(ctx, settings)
}

// SupportedTypes returns all registered source types, sorted.
func (f *Factory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// BuildSharePoint creates the Microsoft Graph repository. The returned
// repository also manages change subscriptions.
func BuildSharePoint(ctx context.Context, settings domain.Settings) (driven.RemoteRepository, error) {
	cfg, err := sharepoint.ParseConfig(settings.SharePoint, settings.Server.ClientState)
	if err != nil {
		return nil, err
	}
	return sharepoint.New(sharepoint.NewClient(ctx, cfg), cfg), nil
}

// BuildFilesystem creates the local directory repository.
func BuildFilesystem(_ context.Context, settings domain.Settings) (driven.RemoteRepository, error) {
	if settings.Filesystem.Root == "" {
		return nil, fmt.Errorf("%w: filesystem.root is required", domain.ErrNotConfigured)
	}
	return filesystem.New(settings.Filesystem.Root), nil
}

// BuildGitHub creates the GitHub repository.
func BuildGitHub(ctx context.Context, settings domain.Settings) (driven.RemoteRepository, error) {
	cfg, err := github.ParseConfig(settings.GitHub)
	if err != nil {
		return nil, err
	}
	client, err := github.NewClient(ctx, settings.GitHub.Token)
	if err != nil {
		return nil, err
	}
	return github.New(client, cfg), nil
}

// BuildDrive creates the Google Drive repository.
func BuildDrive(ctx context.Context, settings domain.Settings) (driven.RemoteRepository, error) {
	cfg, err := drive.ParseConfig(settings.Drive)
	if err != nil {
		return nil, err
	}
	svc, err := google.NewDriveServiceFromFile(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	return drive.New(svc, cfg, google.NewDriveRateLimiter()), nil
}
