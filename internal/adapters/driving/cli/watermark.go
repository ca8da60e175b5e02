package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var watermarkCmd = &cobra.Command{
	Use:   "watermark",
	Short: "Inspect and maintain the watermark",
	Long: `The watermark records the last processed change token of every document.
A document whose token is unchanged at the source is skipped by a pass.`,
}

var watermarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked documents and their change tokens",
	RunE:  runWatermarkList,
}

var watermarkForgetCmd = &cobra.Command{
	Use:   "forget <document-id>",
	Short: "Forget a document so the next pass re-processes it",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatermarkForget,
}

func init() {
	watermarkCmd.AddCommand(watermarkListCmd)
	watermarkCmd.AddCommand(watermarkForgetCmd)
	rootCmd.AddCommand(watermarkCmd)
}

func runWatermarkList(cmd *cobra.Command, _ []string) error {
	index, err := requireIndex()
	if err != nil {
		return err
	}

	watermark, err := index.Watermark(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read watermark: %w", err)
	}

	if len(watermark) == 0 {
		cmd.Println("No documents tracked.")
		return nil
	}

	ids := make([]string, 0, len(watermark))
	for id := range watermark {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOCUMENT\tTOKEN")
	for _, id := range ids {
		fmt.Fprintf(w, "%s\t%s\n", id, watermark[id])
	}
	return w.Flush()
}

func runWatermarkForget(cmd *cobra.Command, args []string) error {
	index, err := requireIndex()
	if err != nil {
		return err
	}

	if err := index.Forget(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to forget %s: %w", args[0], err)
	}

	cmd.Printf("Forgot %s; it will be re-processed on the next pass.\n", args[0])
	return nil
}
