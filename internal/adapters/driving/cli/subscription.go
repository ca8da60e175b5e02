package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var subscriptionCmd = &cobra.Command{
	Use:     "subscription",
	Aliases: []string{"sub"},
	Short:   "Manage change notification subscriptions",
	Long: `Change notification subscriptions make the remote call the webhook
receiver of "sprag serve" when documents change. The receiver must be
reachable at the configured notification URL before a subscription is
created, because the remote validates it synchronously.`,
}

var subscriptionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new subscription",
	RunE:  runSubscriptionCreate,
}

var subscriptionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active subscriptions",
	RunE:  runSubscriptionList,
}

var subscriptionRenewCmd = &cobra.Command{
	Use:   "renew [subscription-id]",
	Short: "Extend one subscription, or all when no id is given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSubscriptionRenew,
}

func init() {
	subscriptionCmd.AddCommand(subscriptionCreateCmd)
	subscriptionCmd.AddCommand(subscriptionListCmd)
	subscriptionCmd.AddCommand(subscriptionRenewCmd)
	rootCmd.AddCommand(subscriptionCmd)
}

func runSubscriptionCreate(cmd *cobra.Command, _ []string) error {
	subs, err := requireSubscriptions()
	if err != nil {
		return err
	}

	sub, err := subs.Create(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	cmd.Printf("Created subscription %s on %s (expires %s)\n",
		sub.ID, sub.Resource, sub.ExpiresAt.Format(time.RFC3339))
	return nil
}

func runSubscriptionList(cmd *cobra.Command, _ []string) error {
	subs, err := requireSubscriptions()
	if err != nil {
		return err
	}

	list, err := subs.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}

	if len(list) == 0 {
		cmd.Println("No subscriptions.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRESOURCE\tCHANGE\tEXPIRES\tNOTIFICATION URL")
	for _, s := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Resource, s.ChangeType, s.ExpiresAt.Format(time.RFC3339), s.NotificationURL)
	}
	return w.Flush()
}

func runSubscriptionRenew(cmd *cobra.Command, args []string) error {
	subs, err := requireSubscriptions()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		sub, err := subs.Renew(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to renew %s: %w", args[0], err)
		}
		cmd.Printf("Renewed %s until %s\n", sub.ID, sub.ExpiresAt.Format(time.RFC3339))
		return nil
	}

	renewed, err := subs.RenewAll(cmd.Context())
	cmd.Printf("Renewed %d subscriptions\n", renewed)
	if err != nil {
		return fmt.Errorf("some renewals failed: %w", err)
	}
	return nil
}
