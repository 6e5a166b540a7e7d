package main

import (
	"os"

	"dsny-backend/cmd/dsnyctl/commands"
)

// Version information - set during build
var version = "dev"

func main() {
	// Errors are printed by the commands with color formatting
	if err := commands.Execute(version); err != nil {
		os.Exit(1)
	}
}
