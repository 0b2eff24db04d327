package main

import (
	"os"

	"github.com/scarydoors/jokerforge/cmd/jokerforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
