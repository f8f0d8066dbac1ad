package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/chaatgpt/till/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportEODCmd)
	reportCmd.AddCommand(reportProductsCmd)

	reportProductsCmd.Flags().String("period", "daily", "Reporting period: daily or weekly")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print end-of-day and product reports",
}

var reportEODCmd = &cobra.Command{
	Use:   "eod",
	Short: "Print today's end-of-day summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			s, err := a.Till.Summary(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Date:\t%s\n", s.Date)
			fmt.Fprintf(w, "Total Bills:\t%d\n", s.BillCount)
			fmt.Fprintf(w, "Total Sales:\t₹%s\n", s.TotalSales)
			fmt.Fprintf(w, "Average Bill:\t₹%s\n", s.AverageBill)
			fmt.Fprintf(w, "Cash Received:\t₹%s\n", s.CashAmountReceived)
			fmt.Fprintf(w, "UPI Received:\t₹%s\n", s.UPIAmountReceived)
			fmt.Fprintf(w, "Pending:\t₹%s\n", s.PendingAmount)
			return w.Flush()
		})
	},
}

var reportProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Print product sales, highest quantity first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		return withApp(cmd, func(a *app.App) error {
			products, err := a.Till.ProductReport(cmd.Context(), period)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sales in this period")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRODUCT\tORDERS\tQUANTITY\tREVENUE")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%d\t%d\t₹%s\n", p.Name, p.OrderCount, p.TotalQuantity, p.TotalRevenue)
			}
			return w.Flush()
		})
	},
}
