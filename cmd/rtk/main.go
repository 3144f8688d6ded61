// Package main is the entry point for the rtk CLI binary.
package main

import (
	"os"

	"github.com/sahilmgandhi/rtk/cmd/rtk/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
