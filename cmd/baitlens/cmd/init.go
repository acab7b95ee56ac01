package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/baitlens/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize baitlens configuration",
	Long: `Write a default config.yaml to your config directory.

Settings:
  server      base URL of the analysis service
  embeddings  initial state of the embeddings toggle
  timeout     request timeout, e.g. 30s (empty means none)
  log_file    where the TUI writes its log

Every setting can be overridden by a flag or a BAITLENS_* environment
variable, which may also come from a .env file in the working directory.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Point 'server' at your analysis service")
	fmt.Fprintln(out, "  2. Run 'baitlens health' to check the connection")
	fmt.Fprintln(out, "  3. Run 'baitlens' to start the interactive UI")
	return nil
}
