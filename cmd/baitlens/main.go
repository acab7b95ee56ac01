// Package main is the entry point for the baitlens CLI.
package main

import (
	"os"

	"github.com/f3rmion/baitlens/cmd/baitlens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
