package main

import (
	"os"

	"github.com/medbot-io/medbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
