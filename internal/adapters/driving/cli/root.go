// Package cli provides the sprag command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

// Services holds everything commands operate on. It is built after flag
// parsing so --config-dir is honoured.
type Services struct {
	Settings domain.Settings
	Config   driven.ConfigStore

	Index driving.IndexService

	// Sync, Scheduler and Notifier are nil when the source is not configured;
	// SetupErr then says why.
	Sync          driving.SyncController
	Scheduler     driving.Scheduler
	Notifier      driven.Notifier
	Subscriptions driving.SubscriptionService
	SetupErr      error

	// Close releases stores and connections.
	Close func() error
}

// Bootstrap builds Services for a configuration directory.
type Bootstrap func(ctx context.Context, configDir string) (*Services, error)

var (
	version = "dev"

	configDir string
	verbose   bool

	bootstrap Bootstrap
	app       *Services
)

var rootCmd = &cobra.Command{
	Use:   "sprag",
	Short: "Keep a chunked document index in step with its source",
	Long: `sprag keeps a derived index of chunked, embedded documents synchronised
with a remote corpus (SharePoint, a local directory, a GitHub repository or a
Google Drive folder).

Only new and changed documents are fetched and re-chunked; documents removed
at the source lose their chunks. Change notifications, the periodic scheduler,
this CLI and the MCP server all trigger passes through one controller, which
runs at most one pass at a time and drops triggers during the cooldown that
follows each pass.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sprag)")
}

// Execute runs the root command with the given version and service builder.
func Execute(v string, b Bootstrap) error {
	version = v
	bootstrap = b

	err := rootCmd.Execute()
	if closeErr := teardown(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// skipsServices marks commands that run without building services.
const skipsServices = "sprag/skip-services"

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || app != nil || cmd.Annotations[skipsServices] == "true" {
		return nil
	}

	built, err := bootstrap(cmd.Context(), configDir)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	app = built
	if built.SetupErr != nil {
		logger.Debug("source not ready: %v", built.SetupErr)
	}
	return nil
}

// teardown closes services built by setup. Services injected directly
// (tests) are left alone.
func teardown() error {
	if bootstrap == nil || app == nil {
		return nil
	}
	s := app
	app = nil
	if s.Close == nil {
		return nil
	}
	return s.Close()
}

// requireSync returns the sync controller or explains why there is none.
func requireSync() (driving.SyncController, error) {
	if app == nil {
		return nil, errors.New("sync service not configured")
	}
	if app.Sync == nil {
		if app.SetupErr != nil {
			return nil, fmt.Errorf("sync service not configured: %w", app.SetupErr)
		}
		return nil, errors.New("sync service not configured")
	}
	return app.Sync, nil
}

// requireIndex returns the index service.
func requireIndex() (driving.IndexService, error) {
	if app == nil || app.Index == nil {
		return nil, errors.New("index service not configured")
	}
	return app.Index, nil
}

// requireSubscriptions returns the subscription service.
func requireSubscriptions() (driving.SubscriptionService, error) {
	if app == nil {
		return nil, errors.New("subscription service not configured")
	}
	if app.Subscriptions == nil {
		if app.SetupErr != nil {
			return nil, fmt.Errorf("subscription service not configured: %w", app.SetupErr)
		}
		return nil, fmt.Errorf("%w: source %q does not support change subscriptions",
			domain.ErrUnsupportedType, app.Settings.SourceType)
	}
	return app.Subscriptions, nil
}
