package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the analysis service is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	c, err := newClient(cfg, cliLogger())
	if err != nil {
		return err
	}

	h, err := c.Health(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Server:  %s\n", c.Server())
	fmt.Fprintf(out, "Status:  %s\n", h.Status)
	fmt.Fprintf(out, "OpenAI:  %s\n", enabled(h.OpenAIEnabled))
	fmt.Fprintf(out, "Actian:  %s\n", enabled(h.ActianEnabled))
	return nil
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
