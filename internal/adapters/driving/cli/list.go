package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output documents as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	docs, err := engine.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	if listJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	for _, doc := range docs {
		if doc.Indexed {
			cmd.Printf("%s\n", doc.Name)
		} else {
			cmd.Printf("%s (not indexed)\n", doc.Name)
		}
		cmd.Printf("  file: %s (%s), %d pages, %d chunks\n",
			doc.Filename, domain.HumanSize(doc.SizeBytes), doc.PageCount, doc.ChunkCount)
		if doc.Summary != "" {
			cmd.Printf("  %s\n", doc.Summary)
		}
		cmd.Println()
	}
	return nil
}
