// Package cli implements the driveport command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/driveport/internal/logger"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "driveport",
	Short: "Export Google Drive documents to annotated markdown or PDF",
	Long: `driveport exports Google Docs, Sheets and Slides to local markdown
or PDF artifacts, anchoring review comments into the text, extracting
embedded images, and caching results so unchanged documents are
skipped on re-export.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.driveport)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
