package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/medbot-io/medbot/internal/progress"
	"github.com/medbot-io/medbot/internal/retrieval"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the medical knowledge corpus",
	Long:  `Reads the corpus directory, embeds its contents and persists the vector index to the data directory for the chat server to use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		store, err := retrieval.NewStore(embedder)
		if err != nil {
			return fmt.Errorf("creating vector store: %w", err)
		}

		ctx := context.Background()
		n, err := retrieval.Index(ctx, store, retrieval.CorpusConfig{
			RootDir:      cfg.CorpusDir,
			Include:      cfg.Include,
			Exclude:      cfg.Exclude,
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		}, progress.NewReporter())
		if err != nil {
			return fmt.Errorf("indexing corpus: %w", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		if err := store.Persist(ctx, cfg.DataDir); err != nil {
			return fmt.Errorf("persisting index: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Indexed %d chunks from %s into %s\n", n, cfg.CorpusDir, cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
