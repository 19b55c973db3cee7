package main

import (
	"os"

	"github.com/clinidocs/docrouter/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
