package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/services"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and ingest files dropped into it",
	Long: `Watches the inbox directory and runs the ingestion pipeline for
every file dropped into it. Successfully ingested files are removed
from the inbox. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "directory to watch (default: <data dir>/inbox)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	dir := watchDir
	if dir == "" {
		dir = appConfig.WatchDir()
	}

	watcher, err := services.NewWatcher(engine, dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for result := range watcher.Results {
			if result.Status == "success" {
				cmd.Printf("✓ %s (%d chunks)\n", result.Document, result.ChunksCreated)
			} else {
				cmd.Printf("✗ %s\n", result.Error)
			}
		}
	}()

	cmd.Printf("Watching %s (ctrl-c to stop)\n", dir)
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
