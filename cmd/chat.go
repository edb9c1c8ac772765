package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/medbot-io/medbot/internal/booking"
	"github.com/medbot-io/medbot/internal/db"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with medbot in the terminal",
	Long:  `Starts an interactive terminal conversation with the assistant. Type "exit" or press Ctrl-C to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
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

		sessionID := uuid.New().String()
		ctx := context.Background()

		fmt.Fprintln(os.Stderr, "Chatting with medbot. Type \"exit\" to quit.")
		for {
			prompt := promptui.Prompt{Label: "You"}
			input, err := prompt.Run()
			if err != nil {
				if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
					return nil
				}
				return err
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				return nil
			}

			reply, err := engine.Turn(ctx, sessionID, input)
			if err != nil {
				return fmt.Errorf("processing message: %w", err)
			}
			fmt.Printf("medbot: %s\n", reply)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
