// Package main provides the entry point for the snowcover CLI.
package main

import (
	"os"

	"github.com/lsrd/snowcover/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
