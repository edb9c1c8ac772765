package cmd

import (
	"github.com/spf13/cobra"

	"github.com/medbot-io/medbot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize medbot configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure medbot and generates a .medbot.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
