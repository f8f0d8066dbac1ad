package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/chaatgpt/till/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.AddCommand(menuListCmd)
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Inspect the stall menu",
}

var menuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the items on the menu with their prices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE")
			for _, item := range a.Menu.List() {
				fmt.Fprintf(w, "%s\t%s\t₹%s\n", item.ID, item.Name, item.Price.Short())
			}
			return w.Flush()
		})
	},
}
