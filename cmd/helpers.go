package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/medbot-io/medbot/internal/booking"
	"github.com/medbot-io/medbot/internal/config"
	"github.com/medbot-io/medbot/internal/dialogue"
	"github.com/medbot-io/medbot/internal/embeddings"
	"github.com/medbot-io/medbot/internal/intent"
	"github.com/medbot-io/medbot/internal/llm"
	"github.com/medbot-io/medbot/internal/retrieval"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `medbot init` to create a config file", err)
	}
	return cfg, nil
}

// createLLMProviderFromConfig creates the rate-limited LLM provider.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	return llm.NewRateLimitedProvider(provider, cfg.RequestsPerMinute), nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}
	switch provider {
	case config.ProviderOpenAI, config.ProviderOllama:
		return embeddings.New(string(provider), cfg.EmbeddingModel)
	default:
		// Providers without native embeddings fall back to OpenAI.
		return embeddings.New(string(config.ProviderOpenAI), cfg.EmbeddingModel)
	}
}

// createRetrievalStore creates the vector store and loads any persisted
// corpus from the data dir. A missing corpus is a warning, not an error.
func createRetrievalStore(cfg *config.Config, embedder embeddings.Embedder) (*retrieval.Store, error) {
	store, err := retrieval.NewStore(embedder)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}
	if err := store.Load(context.Background(), cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load corpus index from %s: %v\n", cfg.DataDir, err)
		fmt.Fprintf(os.Stderr, "Medical answers will lack context. Run `medbot index` first.\n")
	}
	return store, nil
}

// createEngine wires the dialogue engine with all its collaborators.
func createEngine(cfg *config.Config, bookingStore *booking.Store, vectorStore *retrieval.Store, provider llm.Provider) *dialogue.Engine {
	return dialogue.NewEngine(
		intent.NewLLMExtractor(provider, cfg.Model),
		booking.NewExecutor(bookingStore),
		retrieval.NewAnswerer(vectorStore, provider, cfg.Model, cfg.RetrievalTopK),
		retrieval.NewInvalidResponder(provider, cfg.Model),
		cfg.DefaultLanguage,
	)
}
