package cmd

import (
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch an interactive terminal UI for analyzing text.

Features:
  - Paste text or load one of the sample texts
  - Toggle the embeddings layer per request
  - Read each metric as a card with its breakdown
  - Inspect and copy the raw service response

Controls:
  ctrl+r  Analyze
  F1-F3   Load sample
  ctrl+t  Toggle embeddings
  esc     Controls mode / quit`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
