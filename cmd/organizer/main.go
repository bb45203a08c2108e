package main

import (
	"os"

	"github.com/landy-dev/organizer-be/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
