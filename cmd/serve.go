package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/medbot-io/medbot/internal/booking"
	"github.com/medbot-io/medbot/internal/db"
	"github.com/medbot-io/medbot/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the medbot HTTP server",
	Long:  `Starts the medbot server with the chat API, a WebSocket chat endpoint and the appointment REST API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort == 0 {
			servePort = cfg.Port
		}

		provider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		vectorStore, err := createRetrievalStore(cfg, embedder)
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		bookingStore := booking.NewStore(database)
		engine := createEngine(cfg, bookingStore, vectorStore, provider)

		srv := server.New(server.Config{
			Port:     servePort,
			AllowAll: cfg.AllowAllOrigins,
		}, database, engine, bookingStore)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "medbot v%s starting on port %d\n", Version, servePort)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DatabasePath)
		fmt.Fprintf(os.Stderr, "  Corpus chunks indexed: %d\n", vectorStore.Count())

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
