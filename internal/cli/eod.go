package cli

import (
	"fmt"

	"github.com/chaatgpt/till/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(eodCmd)
	eodCmd.AddCommand(eodResetCmd)

	eodResetCmd.Flags().Bool("yes", false, "Confirm the reset")
}

var eodCmd = &cobra.Command{
	Use:   "eod",
	Short: "Manage the end-of-day ledger",
}

var eodResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear today's bills and totals",
	Long:  `Clear today's bills and totals. This cannot be undone; pass --yes to confirm.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return withApp(cmd, func(a *app.App) error {
			if _, err := a.Till.ResetEOD(cmd.Context(), yes); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "EOD data reset")
			return nil
		})
	},
}
