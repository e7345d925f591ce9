package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

var (
	historyLimit    int
	exportFormat    string
	clearAllHistory bool
)

var historyCmd = &cobra.Command{
	Use:   "history [document]",
	Short: "Show the conversation history for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var historyExportCmd = &cobra.Command{
	Use:   "export [document]",
	Short: "Export a document's conversation history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats [document]",
	Short: "Show conversation statistics for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryStats,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear [document]",
	Short: "Clear conversation history",
	Long: `Clears the conversation history for a document, or for every
document when --all is given. A timestamped backup of the history file
is written first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show only the most recent N messages (0 = all)")
	historyExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format: json or csv")
	historyClearCmd.Flags().BoolVar(&clearAllHistory, "all", false, "clear history for every document")

	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	msgs := conversations.History(cmd.Context(), args[0], historyLimit)
	if len(msgs) == 0 {
		cmd.Println("No conversation history.")
		return nil
	}

	for _, msg := range msgs {
		cmd.Printf("[%s] %s\n", msg.Timestamp.Format("2006-01-02 15:04"), msg.Role)
		cmd.Printf("  %s\n", msg.Content)
		if sources, ok := msg.Metadata["sources"].([]any); ok && len(sources) > 0 {
			parts := make([]string, len(sources))
			for i, s := range sources {
				parts[i] = fmt.Sprint(s)
			}
			cmd.Printf("  sources: %s\n", strings.Join(parts, ", "))
		}
		cmd.Println()
	}
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	format := domain.ExportFormat(strings.ToLower(exportFormat))
	out, err := conversations.Export(cmd.Context(), args[0], format)
	if err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	cmd.Println(out)
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	stats := conversations.Stats(cmd.Context(), args[0])
	cmd.Printf("Messages: %d\n", stats.MessageCount)
	if !stats.FirstMessageTime.IsZero() {
		cmd.Printf("First:    %s\n", stats.FirstMessageTime.Format("2006-01-02 15:04"))
		cmd.Printf("Last:     %s\n", stats.LastMessageTime.Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	if clearAllHistory {
		if err := conversations.Clear(cmd.Context(), ""); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		cmd.Println("Cleared all conversation history.")
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("specify a document or --all")
	}
	if err := conversations.Clear(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	cmd.Printf("Cleared history for %s\n", args[0])
	return nil
}
