// Package main provides the ecltoml command.
package main

import (
	"os"

	"github.com/leapstack-labs/ecltoml/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
