// Package cli implements the lumina command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/adapters/driven/embedding/tfidf"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/adapters/driven/llm/offline"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/adapters/driven/llm/openrouter"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/adapters/driven/storage/chatfile"
	indexstore "github.com/Iamzain804/Lumina-PDF-Bot/internal/adapters/driven/storage/index"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/adapters/driven/storage/sqlite"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/config"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driven"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driving"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/services"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/logger"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/normalisers/plaintext"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/postprocessors/chunker"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

// Package services, wired lazily on first use so commands like version
// never touch the filesystem. Tests inject fakes via SetServices.
var (
	engine        driving.RetrievalEngine
	conversations driving.ConversationService
	appConfig     config.Config

	registry driven.DocumentRegistry
	answerer driven.AnswerService
)

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Ask questions about your documents",
	Long: `Lumina ingests text documents into a local similarity index and
answers questions about them, citing the pages the answer came from.
All state lives under a single data directory; no network access is
needed with the default offline provider.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}

// Execute runs the CLI. The version string is stamped by the build.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	defer closeServices()
	return rootCmd.Execute()
}

// SetServices injects the engine and conversation service, bypassing
// the config-driven wiring. Used by tests.
func SetServices(e driving.RetrievalEngine, c driving.ConversationService) {
	engine = e
	conversations = c
}

// ensureServices wires the full pipeline from configuration on first
// use.
func ensureServices() error {
	if engine != nil {
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	appConfig = cfg

	indexes, err := indexstore.NewStore(cfg.IndexDir())
	if err != nil {
		return err
	}

	chats, err := chatfile.NewStore(cfg.HistoryPath())
	if err != nil {
		return err
	}

	registry, err = sqlite.NewRegistry(cfg.DataDir)
	if err != nil {
		return err
	}

	answerer, err = newAnswerer(cfg.Provider)
	if err != nil {
		return err
	}

	e, err := services.NewEngine(services.EngineConfig{
		Extractors: []driven.TextExtractor{plaintext.New()},
		Splitter: chunker.New(
			chunker.WithChunkSize(cfg.Chunking.Size),
			chunker.WithOverlap(cfg.Chunking.Overlap),
		),
		NewVectorizer: func() driven.Vectorizer {
			return tfidf.New(tfidf.WithMaxFeatures(cfg.Retrieval.MaxFeatures))
		},
		Indexes:       indexes,
		Registry:      registry,
		Conversations: chats,
		Answerer:      answerer,
		UploadsDir:    cfg.UploadsDir(),
		TopK:          cfg.Retrieval.TopK,
		SummaryWords:  cfg.SummaryWords,
	})
	if err != nil {
		return err
	}

	engine = e
	conversations = services.NewConversations(chats)
	return nil
}

func newAnswerer(p config.Provider) (driven.AnswerService, error) {
	switch p.Name {
	case "openrouter":
		return openrouter.New(openrouter.Config{
			APIKey:            p.APIKey,
			Model:             p.Model,
			Temperature:       &p.Temperature,
			MaxTokens:         p.MaxTokens,
			RequestsPerMinute: p.RequestsPerMinute,
		})
	default:
		return offline.New(), nil
	}
}

func closeServices() {
	if answerer != nil {
		if err := answerer.Close(); err != nil {
			logger.Warn("Close answer service: %v", err)
		}
	}
	if registry != nil {
		if err := registry.Close(); err != nil {
			logger.Warn("Close registry: %v", err)
		}
	}
}
