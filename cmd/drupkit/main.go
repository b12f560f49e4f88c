package main

import (
	"os"

	"github.com/drupkit/drupkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
