package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	folderOutput  string
	folderFormat  string
	folderWorkers int
	folderDepth   int
)

var folderCmd = &cobra.Command{
	Use:   "folder <folder-id>",
	Short: "Export a Drive folder tree",
	Long: `Recursively exports a Drive folder. The output mirrors the source
hierarchy: each folder gets a metadata record and a children/
directory holding its items. Shortcut cycles are detected and each
folder is processed once.`,
	Args: cobra.ExactArgs(1),
	RunE: runFolder,
}

func init() {
	folderCmd.Flags().StringVarP(&folderOutput, "output", "o", "", "output directory (default from config)")
	folderCmd.Flags().StringVarP(&folderFormat, "format", "f", "", "output format: markdown or pdf (default from config)")
	folderCmd.Flags().IntVarP(&folderWorkers, "workers", "w", 0, "concurrent export workers")
	folderCmd.Flags().IntVarP(&folderDepth, "depth", "d", -1, "max recursion depth (-1 unbounded, 0 direct children)")
	rootCmd.AddCommand(folderCmd)
}

func runFolder(cmd *cobra.Command, args []string) error {
	app, err := newApp(folderOutput)
	if err != nil {
		return err
	}
	defer app.Close()

	opts, err := buildOptions(app.config, folderFormat, folderWorkers, folderDepth)
	if err != nil {
		return err
	}

	result, err := app.orchestrator(opts).ExportFolder(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("folder export failed: %w", err)
	}

	printResult(cmd, result)
	return nil
}
