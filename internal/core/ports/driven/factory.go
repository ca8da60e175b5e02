package driven

import (
	"context"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// RepositoryBuilder creates a RemoteRepository from settings.
type RepositoryBuilder func(ctx context.Context, settings domain.Settings) (RemoteRepository, error)

// RepositoryFactory creates remote repositories by source type.
type RepositoryFactory interface {
	// Create returns the repository selected by settings.SourceType.
	// Returns ErrUnsupportedType if the source type is unknown.
	Create(ctx context.Context, settings domain.Settings) (RemoteRepository, error)

	// Register adds a builder for the given source type.
	Register(sourceType string, builder RepositoryBuilder)

	// SupportedTypes returns all registered source types, sorted.
	SupportedTypes() []string
}
