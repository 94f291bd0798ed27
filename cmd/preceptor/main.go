// Command preceptor is a question-answering assistant for course
// materials. It routes each query to a curated intent table or to
// vector retrieval over ingested documents.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/preceptor-labs/preceptor-cli/internal/adapters/driven/config/file"
	"github.com/preceptor-labs/preceptor-cli/internal/adapters/driven/embedding/ollama"
	"github.com/preceptor-labs/preceptor-cli/internal/adapters/driven/embedding/openai"
	"github.com/preceptor-labs/preceptor-cli/internal/adapters/driven/index/flat"
	"github.com/preceptor-labs/preceptor-cli/internal/adapters/driven/index/lexical"
	"github.com/preceptor-labs/preceptor-cli/internal/adapters/driven/reader/hf"
	"github.com/preceptor-labs/preceptor-cli/internal/adapters/driven/storage/sqlite"
	"github.com/preceptor-labs/preceptor-cli/internal/adapters/driving/cli"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
	"github.com/preceptor-labs/preceptor-cli/internal/core/services"
	"github.com/preceptor-labs/preceptor-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cfg.ApplyDefaults()

	dataDir := cfg.GetString(file.KeyDataDir)
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".preceptor", "data")
	}

	embedder, err := newEmbeddingService(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	index, err := flat.New(filepath.Join(dataDir, "index"), embedder.Dimensions())
	if err != nil {
		return fmt.Errorf("opening document index: %w", err)
	}

	intents, err := lexical.New(dataDir)
	if err != nil {
		return fmt.Errorf("opening intent index: %w", err)
	}
	intentsPath := cfg.GetString(file.KeyIntentsPath)
	if intentsPath == "" {
		intentsPath = filepath.Join(dataDir, "intents.json")
	}
	if err := intents.LoadFile(intentsPath); err != nil {
		return fmt.Errorf("loading intents: %w", err)
	}

	history, err := sqlite.NewHistoryStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer history.Close()

	generator := newGenerator(cfg)

	routerOpts := []services.RouterOption{services.WithHistory(history)}
	if k := cfg.GetInt(file.KeyRetrievalTopK); k > 0 {
		routerOpts = append(routerOpts, services.WithRetrievalTopK(k))
	}
	router := services.NewRouterService(intents, index, embedder, generator, routerOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Live-reload the intent table when the definition file changes.
	go func() {
		if err := intents.Watch(ctx, intentsPath); err != nil {
			logger.Warn("Intent watch stopped: %v", err)
		}
	}()

	cli.SetQueryService(router)
	cli.SetIngestService(services.NewIngestService(index, embedder))
	cli.SetStatsService(services.NewStatsService(index, intents, embedder))
	cli.SetIntentIndex(intents)
	cli.SetHistoryStore(history)

	return cli.Execute()
}

// newEmbeddingService builds the configured embedding provider.
func newEmbeddingService(cfg *file.ConfigStore) (driven.EmbeddingService, error) {
	provider := cfg.GetString(file.KeyEmbeddingProvider)

	switch provider {
	case "openai":
		apiKey := cfg.GetString(file.KeyEmbeddingAPIKey)
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  apiKey,
			BaseURL: cfg.GetString(file.KeyEmbeddingBaseURL),
			Model:   cfg.GetString(file.KeyEmbeddingModel),
		})
	case "ollama", "":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.GetString(file.KeyEmbeddingBaseURL),
			Model:   cfg.GetString(file.KeyEmbeddingModel),
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// newGenerator composes the two-tier generator: an extractive QA reader
// when enabled, always backed by template extraction.
func newGenerator(cfg *file.ConfigStore) services.Generator {
	template := services.NewTemplateGenerator()
	if !cfg.GetBool(file.KeyReaderEnabled) {
		return template
	}

	token := cfg.GetString(file.KeyReaderToken)
	if token == "" {
		token = os.Getenv("HF_TOKEN")
	}
	reader := hf.NewReader(hf.Config{
		Token: token,
		Model: cfg.GetString(file.KeyReaderModel),
	})
	return services.NewReaderGenerator(reader, template)
}
