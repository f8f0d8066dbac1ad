package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chaatgpt/till/internal/app"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", ".", "Directory to write the CSV file to")
}

var exportCmd = &cobra.Command{
	Use:   "export KIND",
	Short: "Write a CSV export of today's data",
	Long: `Write a CSV export to a file and record it in the export history.
KIND is one of bills, eod, product_report or all_data.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	kind, ok := enum.ParseExportKind(args[0])
	if !ok || kind == enum.ExportKindAutoSaveBills {
		return fmt.Errorf("unknown export type %q (use bills, eod, product_report or all_data)", args[0])
	}
	dir, _ := cmd.Flags().GetString("out")

	return withApp(cmd, func(a *app.App) error {
		file, err := a.Till.Export(cmd.Context(), kind)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		path := filepath.Join(dir, file.FileName)
		if err := os.WriteFile(path, []byte(file.Content), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", file.Rows, path)
		return nil
	})
}
