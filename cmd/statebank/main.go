package main

import (
	"os"

	"github.com/statebank-dev/statebank/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
