package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index and controller state",
	Long: `Shows how many documents the watermark tracks, how many own chunks in
the derived store, and the total chunk count. The controller state is the
state of this process; query GET /status on a running "sprag serve" for the
state of the server.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	index, err := requireIndex()
	if err != nil {
		return err
	}

	stats, err := index.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}

	if statusJSON {
		out := map[string]any{
			"source":    app.Settings.SourceType,
			"tracked":   stats.Tracked,
			"documents": stats.Documents,
			"chunks":    stats.Chunks,
		}
		if app.Sync != nil {
			out["controller"] = app.Sync.Status()
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Source:    %s\n", app.Settings.SourceType)
	cmd.Printf("Tracked:   %d documents\n", stats.Tracked)
	cmd.Printf("Indexed:   %d documents\n", stats.Documents)
	cmd.Printf("Chunks:    %d\n", stats.Chunks)

	if app.Sync == nil {
		if app.SetupErr != nil {
			cmd.Printf("Sync:      unavailable (%v)\n", app.SetupErr)
		}
		return nil
	}

	status := app.Sync.Status()
	cmd.Printf("Sync:      %s\n", status.State)
	if !status.CooldownUntil.IsZero() {
		cmd.Printf("Cooldown:  until %s\n", status.CooldownUntil.Format(time.RFC3339))
	}
	if status.LastError != "" {
		cmd.Printf("Last error: %s\n", status.LastError)
	}
	return nil
}
