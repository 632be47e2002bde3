// Package main is the entry point for the rgm CLI and API server.
package main

import (
	"os"

	"github.com/donaldgifford/rocketgrowth-margin/cmd/rgm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
