package main

import (
	"os"

	"github.com/dtroshin/newsforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
