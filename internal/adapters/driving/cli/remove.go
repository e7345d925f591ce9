package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [document]",
	Short: "Remove a document and everything known about it",
	Long: `Deletes the staged file, the persisted index, the registry record
and the conversation history for a document. Removing a document that
does not exist is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	doc := args[0]
	if err := engine.Remove(cmd.Context(), doc); err != nil {
		return fmt.Errorf("remove %s: %w", doc, err)
	}
	cmd.Printf("Removed %s\n", doc)
	return nil
}
