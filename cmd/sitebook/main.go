package main

import (
	"os"

	"github.com/sitebook-dev/sitebook/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
