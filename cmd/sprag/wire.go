package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sab110/Sharepoint-RAG/internal/adapters/driven/config/file"
	"github.com/sab110/Sharepoint-RAG/internal/adapters/driven/embedding/openai"
	"github.com/sab110/Sharepoint-RAG/internal/adapters/driven/lock"
	"github.com/sab110/Sharepoint-RAG/internal/adapters/driven/storage/sqlite"
	"github.com/sab110/Sharepoint-RAG/internal/adapters/driving/cli"
	"github.com/sab110/Sharepoint-RAG/internal/connectors"
	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/core/services"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers/docx"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers/html"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers/markdown"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers/plaintext"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers/pptx"
	"github.com/sab110/Sharepoint-RAG/internal/normalisers/xlsx"
	"github.com/sab110/Sharepoint-RAG/internal/postprocessors"
)

// repositoryFactory creates the configured remote repository.
type repositoryFactory interface {
	Create(ctx context.Context, settings domain.Settings) (driven.RemoteRepository, error)
}

// factory is replaced in tests.
var factory repositoryFactory = connectors.NewDefaultFactory()

// bootstrap wires the application for a configuration directory.
//
// Only an unreadable config file or database is fatal. Invalid settings or
// an unreachable source leave Sync nil and are reported through SetupErr so
// that commands such as "settings set" can still repair the configuration.
func bootstrap(ctx context.Context, configDir string) (*cli.Services, error) {
	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	settings, setupErr := services.LoadSettings(cfg)
	if settings.DataDir == "" {
		settings.DataDir = filepath.Join(filepath.Dir(cfg.Path()), "data")
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening index store: %w", err)
	}

	app := &cli.Services{
		Settings: settings,
		Config:   cfg,
		Index:    services.NewIndexService(store.WatermarkStore(), store.ChunkStore()),
		SetupErr: setupErr,
		Close:    store.Close,
	}
	if setupErr != nil {
		return app, nil
	}

	pipeline, err := contentPipeline(settings)
	if err != nil {
		app.SetupErr = err
		return app, nil
	}

	repo, err := factory.Create(ctx, settings)
	if err != nil {
		app.SetupErr = err
		return app, nil
	}

	syncer := services.NewSyncer(repo, store.WatermarkStore(), pipeline, store.ChunkStore(), settings.Sync)
	// The file lock makes sync, serve and mcp serve processes on one data
	// directory share the at-most-one-pass rule.
	controller := services.NewRunController(syncer, settings.Sync.CooldownMargin,
		services.WithPassLock(lock.NewFileLock(settings.DataDir)))
	scheduler := services.NewScheduler(settings.Sync.Interval, store.SchedulerStore(), controller)

	app.Sync = controller
	app.Scheduler = scheduler

	if manager, ok := repo.(driven.SubscriptionManager); ok {
		subs := services.NewSubscriptionService(manager)
		app.Subscriptions = subs
		scheduler.WithSubscriptionRenewal(subs, services.DefaultRenewInterval)
	}
	if notifier, ok := repo.(driven.Notifier); ok && settings.Filesystem.Watch {
		app.Notifier = notifier
	}

	app.Close = func() error {
		return errors.Join(controller.Close(), repo.Close(), store.Close())
	}

	logger.Debug("wired %s source, data in %s", settings.SourceType, settings.DataDir)
	return app, nil
}

// contentPipeline builds normalisation followed by chunking and, when an
// API key is configured, embedding.
func contentPipeline(settings domain.Settings) (*services.ContentPipeline, error) {
	registry := normalisers.NewRegistry(
		plaintext.New(),
		markdown.New(),
		html.New(),
		docx.New(),
		pptx.New(),
		xlsx.New(),
	)

	var embeddings driven.EmbeddingService
	if settings.Embedding.APIKey != "" {
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:  settings.Embedding.APIKey,
			BaseURL: settings.Embedding.BaseURL,
			Model:   settings.Embedding.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("embedding service: %w", err)
		}
		embeddings = svc
	}

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors, embeddings)
	pipeline, err := postprocessors.DefaultPipeline(processors, settings.Chunker, embeddings)
	if err != nil {
		return nil, err
	}
	return services.NewContentPipeline(registry, pipeline), nil
}
