package main

import (
	"os"

	"github.com/gncexport/gncexport/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
