package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/driveport/internal/adapters/driven/config/file"
	"github.com/custodia-labs/driveport/internal/core/domain"
	"github.com/custodia-labs/driveport/internal/core/services"
)

var (
	exportOutput  string
	exportFormat  string
	exportWorkers int
)

var exportCmd = &cobra.Command{
	Use:   "export <item-id>...",
	Short: "Export Drive items by ID",
	Long: `Exports one or more Drive items to the output directory. Google
Docs, Sheets and Slides are converted to the requested format; other
files are downloaded verbatim. Unchanged items are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output directory (default from config)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: markdown or pdf (default from config)")
	exportCmd.Flags().IntVarP(&exportWorkers, "workers", "w", 0, "concurrent export workers")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	app, err := newApp(exportOutput)
	if err != nil {
		return err
	}
	defer app.Close()

	opts, err := buildOptions(app.config, exportFormat, exportWorkers, app.config.MaxDepth)
	if err != nil {
		return err
	}

	result, err := app.orchestrator(opts).ExportByIDs(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("batch export failed: %w", err)
	}

	printResult(cmd, result)
	return nil
}

// buildOptions merges flag overrides over the configured defaults.
func buildOptions(cfg file.ExportConfig, format string, workers, maxDepth int) (services.ExportOptions, error) {
	opts := services.ExportOptions{
		Format:   cfg.Format,
		Workers:  cfg.Workers,
		MaxDepth: maxDepth,
	}
	if format != "" {
		opts.Format = domain.ContentFormat(format)
	}
	if workers > 0 {
		opts.Workers = workers
	}
	if !opts.Format.Valid() {
		return opts, fmt.Errorf("%w: unknown format %q (markdown or pdf)", domain.ErrInvalidInput, opts.Format)
	}
	return opts, nil
}

// printResult renders a batch outcome summary.
func printResult(cmd *cobra.Command, result *domain.BatchResult) {
	cmd.Printf("Run %s: %d processed, %d exported, %d skipped, %d failed\n",
		result.RunID, result.TotalProcessed,
		len(result.Successes), len(result.Skipped), len(result.Failures))

	for _, e := range result.Successes {
		cmd.Printf("  exported %s (%s) -> %s\n", e.Name, e.ItemID, e.Path)
	}
	for _, e := range result.Skipped {
		cmd.Printf("  skipped %s (%s): %s\n", e.Name, e.ItemID, e.Reason)
	}
	for _, e := range result.Failures {
		cmd.Printf("  failed %s (%s): %s\n", e.Name, e.ItemID, e.Error)
	}
}
