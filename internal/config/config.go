// Package config loads the application configuration. Values come from
// three layers, each overriding the previous: built-in defaults, the
// TOML config file, and environment variables. A .env file in the
// working directory is loaded into the environment first when present.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Chunking controls how extracted text is split.
type Chunking struct {
	// Size is the target chunk length in characters.
	Size int `toml:"size" env:"SIZE"`

	// Overlap is how many characters consecutive chunks share.
	Overlap int `toml:"overlap" env:"OVERLAP"`
}

// Retrieval controls the similarity search.
type Retrieval struct {
	// TopK is how many chunks are retrieved per question.
	TopK int `toml:"top_k" env:"TOP_K"`

	// MaxFeatures caps the vectorizer vocabulary size.
	MaxFeatures int `toml:"max_features" env:"MAX_FEATURES"`
}

// Provider selects and configures the answer service.
type Provider struct {
	// Name is "offline" or "openrouter".
	Name string `toml:"name" env:"PROVIDER"`

	// APIKey authenticates against OpenRouter.
	APIKey string `toml:"api_key" env:"OPENROUTER_API_KEY"`

	// Model is the OpenRouter model identifier.
	Model string `toml:"model" env:"MODEL"`

	// Temperature controls sampling.
	Temperature float64 `toml:"temperature" env:"TEMPERATURE"`

	// MaxTokens caps completion length.
	MaxTokens int `toml:"max_tokens" env:"MAX_TOKENS"`

	// RequestsPerMinute throttles outbound calls.
	RequestsPerMinute int `toml:"requests_per_minute" env:"REQUESTS_PER_MINUTE"`
}

// Config is the full application configuration.
type Config struct {
	// DataDir is the root for all persisted state.
	DataDir string `toml:"data_dir" env:"LUMINA_DATA_DIR"`

	// SummaryWords caps generated document summaries.
	SummaryWords int `toml:"summary_words" env:"LUMINA_SUMMARY_WORDS"`

	Chunking  Chunking  `toml:"chunking" envPrefix:"LUMINA_CHUNK_"`
	Retrieval Retrieval `toml:"retrieval" envPrefix:"LUMINA_"`
	Provider  Provider  `toml:"provider" envPrefix:"LUMINA_"`
}

// Default returns the built-in configuration. DataDir defaults to
// ~/.lumina, falling back to a relative .lumina when the home directory
// is unknown.
func Default() Config {
	dataDir := ".lumina"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".lumina")
	}

	return Config{
		DataDir:      dataDir,
		SummaryWords: 60,
		Chunking: Chunking{
			Size:    1000,
			Overlap: 200,
		},
		Retrieval: Retrieval{
			TopK:        4,
			MaxFeatures: 1000,
		},
		Provider: Provider{
			Name:              "offline",
			Model:             "openai/gpt-4o-mini",
			Temperature:       0.3,
			MaxTokens:         512,
			RequestsPerMinute: 20,
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path,
// and environment variables, in that order. An absent file is fine; a
// malformed one is an error. When path is empty the default location
// <DataDir>/config.toml is used.
func Load(path string) (Config, error) {
	// Populate the environment from .env before env parsing. Missing
	// .env files are expected.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.toml")
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults and environment only.
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("config: chunk size must be positive, got %d", c.Chunking.Size)
	}
	if c.Chunking.Overlap < 0 {
		return fmt.Errorf("config: chunk overlap must not be negative, got %d", c.Chunking.Overlap)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("config: top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.Retrieval.MaxFeatures <= 0 {
		return fmt.Errorf("config: max_features must be positive, got %d", c.Retrieval.MaxFeatures)
	}
	switch c.Provider.Name {
	case "offline", "openrouter":
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider.Name)
	}
	if c.Provider.Name == "openrouter" && c.Provider.APIKey == "" {
		return fmt.Errorf("config: provider openrouter requires an API key")
	}
	return nil
}

// UploadsDir is where ingested files are staged.
func (c *Config) UploadsDir() string {
	return filepath.Join(c.DataDir, "uploads")
}

// IndexDir holds one persisted similarity index per document.
func (c *Config) IndexDir() string {
	return filepath.Join(c.DataDir, "indexes")
}

// WatchDir is the auto-ingest drop directory.
func (c *Config) WatchDir() string {
	return filepath.Join(c.DataDir, "inbox")
}

// HistoryPath is the conversation log file.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "chat_history.json")
}

// RegistryPath is the document registry database file.
func (c *Config) RegistryPath() string {
	return filepath.Join(c.DataDir, "registry.db")
}
