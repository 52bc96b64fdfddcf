// Package main is the entry point for the tablemd CLI.
package main

import (
	"os"

	"github.com/jmylchreest/tablemd/cmd/tablemd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
