package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
)

// progressInterval is how often a running pass is polled for progress.
var progressInterval = 500 * time.Millisecond

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one synchronisation pass",
	Long: `Triggers a synchronisation pass through the run controller.
New and changed documents are fetched, chunked and stored; documents removed
at the source lose their chunks. The watermark advances only for documents
that were processed successfully, so failures are retried on the next pass.

The command waits for the pass to finish: the pass runs in this process, and
stopping early would leave it uncommitted. A pass already running in another
sprag process on the same data directory makes this trigger a no-op.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	controller, err := requireSync()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	result := controller.Trigger(ctx)
	switch result {
	case domain.TriggerSkippedLocked:
		cmd.Println("A pass is already running (here or in another sprag process); trigger dropped.")
		return nil
	case domain.TriggerSkippedCooldown:
		status := controller.Status()
		cmd.Printf("Cooldown active until %s; trigger dropped.\n", status.CooldownUntil.Format(time.RFC3339))
		return nil
	}

	cmd.Println("Synchronising...")

	if err := waitWithProgress(ctx, cmd, controller); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	status := controller.Status()
	if status.LastSummary != nil {
		printSummary(cmd, status.LastSummary)
	}
	if status.LastError != "" {
		return fmt.Errorf("sync failed: %s", status.LastError)
	}
	return nil
}

// waitWithProgress waits for the running pass, redrawing a progress line
// when output is a terminal.
func waitWithProgress(ctx context.Context, cmd *cobra.Command, controller driving.SyncController) error {
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- controller.Wait(waitCtx)
	}()

	interactive := isTerminal(cmd.OutOrStdout())
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case err := <-errCh:
			if interactive && lastCount > 0 {
				cmd.Println()
			}
			return err
		case <-ticker.C:
			status := controller.Status()
			if interactive && status.Progress > lastCount {
				cmd.Printf("\rProcessing... %d documents", status.Progress)
				lastCount = status.Progress
			}
		}
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printSummary(cmd *cobra.Command, s *domain.PassSummary) {
	cmd.Printf("Pass finished in %s\n", s.Duration.Round(time.Millisecond))
	cmd.Printf("  Listing:  %d new, %d changed, %d deleted, %d unchanged\n",
		s.New, s.Changed, s.Deleted, s.Unchanged)
	cmd.Printf("  Outcomes: %d indexed, %d empty, %d unsupported, %d removed, %d vanished, %d failed\n",
		s.Indexed, s.Empty, s.Unsupported, s.Removed, s.Vanished, s.Failed)
	cmd.Printf("  Chunks:   %d written, %d removed\n", s.ChunksWritten, s.ChunksRemoved)
	for _, f := range s.Failures {
		cmd.Printf("  failed %s: %s\n", f.DocumentID, f.Reason)
	}
}
