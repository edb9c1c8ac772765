package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "medbot",
	Short: "Medical appointment chatbot with knowledge-base retrieval",
	Long: `Medbot is a conversational assistant for a medical practice. It books,
updates and cancels appointments through multi-turn slot-filling
dialogue, and answers medical questions from an indexed knowledge
corpus using retrieval-augmented generation.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".medbot.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
