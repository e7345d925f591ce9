package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	askTopK        int
	askJSON        bool
	askShowContext bool
)

var askCmd = &cobra.Command{
	Use:   "ask [document] [question]",
	Short: "Ask a question about an ingested document",
	Long: `Retrieves the most relevant chunks from the document's index and
generates an answer grounded in them. The exchange is recorded in the
document's conversation history.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (0 = configured default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved context")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	doc := args[0]
	question := strings.Join(args[1:], " ")

	result := engine.Query(cmd.Context(), doc, question, askTopK)

	if askJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(result.Answer)
	if len(result.Sources) > 0 {
		cmd.Printf("\nSources: %s\n", strings.Join(result.Sources, ", "))
	}
	cmd.Printf("Confidence: %s\n", result.Confidence)

	if askShowContext && result.ContextUsed != "" {
		cmd.Println("\n--- Retrieved context ---")
		cmd.Println(result.ContextUsed)
	}
	return nil
}
