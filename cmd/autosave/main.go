package main

import (
	"os"

	"autosave/cmd/autosave/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
