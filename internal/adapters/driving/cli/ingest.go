package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driving"
)

var ingestJSON bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest documents into the index",
	Long: `Runs the full processing pipeline for each file: the text is
extracted, chunked, vectorized and persisted as a searchable index.
Supported formats: .txt, .md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	results := make([]*driving.IngestResult, 0, len(args))
	for _, path := range args {
		results = append(results, ingestOne(cmd.Context(), path))
	}

	if ingestJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		cmd.Println(string(data))
	} else {
		for i, result := range results {
			printIngestResult(cmd, args[i], result)
		}
	}

	for _, result := range results {
		if result.Status != "success" {
			return fmt.Errorf("%d of %d files failed to ingest", countErrors(results), len(results))
		}
	}
	return nil
}

func ingestOne(ctx context.Context, path string) *driving.IngestResult {
	f, err := os.Open(path)
	if err != nil {
		return &driving.IngestResult{
			Status: "error",
			Error:  err.Error(),
		}
	}
	defer f.Close()

	return engine.Ingest(ctx, filepath.Base(path), f)
}

func printIngestResult(cmd *cobra.Command, path string, result *driving.IngestResult) {
	if result.Status != "success" {
		cmd.Printf("✗ %s: %s\n", path, result.Error)
		return
	}
	cmd.Printf("✓ %s -> %s (%d pages, %d chunks)\n",
		path, result.Document, result.PageCount, result.ChunksCreated)
	if result.Summary != "" {
		cmd.Printf("  %s\n", result.Summary)
	}
}

func countErrors(results []*driving.IngestResult) int {
	n := 0
	for _, r := range results {
		if r.Status != "success" {
			n++
		}
	}
	return n
}
