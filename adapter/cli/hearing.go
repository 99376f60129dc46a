package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cancelCaseID string
	cancelReason string
)

var hearingCmd = &cobra.Command{
	Use:   "hearing",
	Short: "Send scheduling signals to the listing system",
}

var hearingCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the pending hearing request for a case",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		if cancelCaseID == "" {
			return fmt.Errorf("--case is required")
		}

		ctx := cmd.Context()
		if err := a.Scheduler.CancelHearing(ctx, cancelCaseID, cancelReason); err != nil {
			return err
		}
		if a.Config.OutboxProcessorEnabled {
			if err := a.OutboxProcessor.ProcessOnce(ctx); err != nil {
				return fmt.Errorf("relay cancellation: %w", err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "hearing cancellation queued for case %s\n", cancelCaseID)
		return nil
	},
}

func init() {
	hearingCancelCmd.Flags().StringVar(&cancelCaseID, "case", "", "case id")
	hearingCancelCmd.Flags().StringVar(&cancelReason, "reason", "", "cancellation reason")
	hearingCmd.AddCommand(hearingCancelCmd)
	rootCmd.AddCommand(hearingCmd)
}
