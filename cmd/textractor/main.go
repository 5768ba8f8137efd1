// Package main is the entry point for the textractor CLI.
package main

import (
	"os"

	"github.com/kumasuke/textractor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
