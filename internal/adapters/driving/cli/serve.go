package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sab110/Sharepoint-RAG/internal/adapters/driving/webhook"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

var (
	serveAddr        string
	serveSyncOnStart bool
	serveNoScheduler bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook receiver and periodic scheduler",
	Long: `Starts the long-running process:

  - an HTTP receiver for change notifications (POST /webhook), with
    GET /health and GET /status,
  - the periodic scheduler, which triggers a pass on sync.interval and
    renews change subscriptions when the source supports them,
  - a filesystem watcher when the source is a local directory with
    filesystem.watch enabled.

Every trigger goes through the same run controller, so bursts of
notifications collapse into one pass followed by a cooldown.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
	serveCmd.Flags().BoolVar(&serveSyncOnStart, "sync-on-start", false, "trigger a pass at startup")
	serveCmd.Flags().BoolVar(&serveNoScheduler, "no-scheduler", false, "disable the periodic scheduler")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	controller, err := requireSync()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = app.Settings.Server.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	receiver := webhook.NewServer(controller, webhook.Config{
		ClientState: app.Settings.Server.ClientState,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return receiver.Run(gctx, addr)
	})

	if scheduler := app.Scheduler; scheduler != nil && !serveNoScheduler {
		g.Go(func() error {
			return ignoreCancel(scheduler.Start(gctx))
		})
		g.Go(func() error {
			<-gctx.Done()
			return scheduler.Stop()
		})
	}

	if notifier := app.Notifier; notifier != nil {
		g.Go(func() error {
			return ignoreCancel(notifier.Watch(gctx, func() {
				logger.Info("change detected, trigger %s", controller.Trigger(gctx))
			}))
		})
	}

	if serveSyncOnStart {
		logger.Info("startup trigger %s", controller.Trigger(gctx))
	}

	cmd.Printf("Listening on %s (source: %s)\n", addr, app.Settings.SourceType)
	err = g.Wait()

	// Let a running pass commit its watermark before stores close.
	if waitErr := controller.Wait(context.WithoutCancel(cmd.Context())); waitErr != nil && err == nil {
		err = waitErr
	}
	return err
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
