package main

import (
	"os"

	"github.com/garagon/datascout/cmd/datascout/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}
