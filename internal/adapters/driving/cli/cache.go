package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheOutput string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage cached exports",
}

var cacheReadCmd = &cobra.Command{
	Use:   "read <item-id>",
	Short: "Show a cached export unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheRead,
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Delete a cached export unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheDelete,
}

func init() {
	cacheCmd.PersistentFlags().StringVarP(&cacheOutput, "output", "o", "", "output directory the cache lives under (default from config)")
	cacheCmd.AddCommand(cacheReadCmd)
	cacheCmd.AddCommand(cacheDeleteCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheRead(cmd *cobra.Command, args []string) error {
	app, err := newApp(cacheOutput)
	if err != nil {
		return err
	}
	defer app.Close()

	item, err := app.store.Read(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("reading cached unit: %w", err)
	}

	cmd.Printf("Item:     %s\n", item.ItemID)
	cmd.Printf("Title:    %s\n", item.Title)
	cmd.Printf("Kind:     %s\n", item.Kind)
	cmd.Printf("Format:   %s\n", item.Format)
	cmd.Printf("Modified: %s\n", item.ModifiedTime.Format("2006-01-02 15:04:05"))
	cmd.Printf("Content:  %d bytes (sha256 %s)\n", len(item.Content), item.ContentHash())
	cmd.Printf("Assets:   %d\n", len(item.Assets))
	cmd.Printf("Comments: %d\n", len(item.Comments))
	return nil
}

func runCacheDelete(cmd *cobra.Command, args []string) error {
	app, err := newApp(cacheOutput)
	if err != nil {
		return err
	}
	defer app.Close()

	deleted, err := app.store.Delete(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("deleting cached unit: %w", err)
	}

	if deleted {
		cmd.Printf("Deleted cached export for %s\n", args[0])
	} else {
		cmd.Printf("No cached export for %s\n", args[0])
	}
	return nil
}
