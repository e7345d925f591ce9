package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [document]",
	Short: "Generate a fresh summary of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	summary, err := engine.Summary(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("summarise %s: %w", args[0], err)
	}
	cmd.Println(summary)
	return nil
}
