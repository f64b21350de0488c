// Package main provides the CLI entry point for pigment.
package main

import (
	"os"

	"github.com/leapstack-labs/pigment/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
