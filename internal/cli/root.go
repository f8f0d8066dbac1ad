// Package cli is the till command line: the HTTP server plus the back
// office commands a stall owner runs at the end of the day.
package cli

import (
	"context"

	"github.com/chaatgpt/till/internal/app"
	"github.com/chaatgpt/till/internal/config"
	"github.com/spf13/cobra"
)

// openApp builds the till used by every command. Tests replace it.
var openApp = func(ctx context.Context) (*app.App, error) {
	return app.New(ctx, config.Load())
}

var rootCmd = &cobra.Command{
	Use:   "till",
	Short: "ChaatGPT point of sale",
	Long: `Single-till point of sale for the ChaatGPT food stall.
Run "till serve" for the HTTP API, or use the report, export and eod
commands against the same database.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// withApp opens the till, runs fn and releases the till afterwards
func withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
