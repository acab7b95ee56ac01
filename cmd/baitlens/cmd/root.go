// Package cmd contains all CLI commands for baitlens.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/baitlens/internal/client"
	"github.com/f3rmion/baitlens/internal/config"
	"github.com/f3rmion/baitlens/internal/logging"
	"github.com/f3rmion/baitlens/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "baitlens",
	Short: "Inspect text for engagement bait patterns",
	Long: `baitlens is a front end for the engagement bait analysis service.

Paste or load sample text, send it to the service and read back the
scored rhetorical signals:
  - Urgency pressure and arousal intensity
  - Low evidence signal (higher means less supporting evidence)
  - Counterargument absence, claim volume vs depth, lexical diversity
  - Engagement bait score from the optional embeddings layer

Running 'baitlens' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/baitlens)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("server", "", "analysis service base URL (default "+client.DefaultServer+")")
	rootCmd.PersistentFlags().String("timeout", "", "request timeout, e.g. 30s (default none)")
	rootCmd.PersistentFlags().Bool("embeddings", false, "request the embeddings layer")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("embeddings", rootCmd.PersistentFlags().Lookup("embeddings"))
}

// initConfig reads in .env and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	if _, err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	viper.SetEnvPrefix("BAITLENS")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadSettings merges the config file with flags and environment.
// Precedence: flag, then BAITLENS_* env, then config.yaml, then defaults.
func loadSettings() (*config.Config, error) {
	configDir := getConfigDir()

	cfg, err := config.LoadDir(configDir)
	if err != nil {
		return nil, err
	}

	if viper.IsSet("server") {
		cfg.Server = viper.GetString("server")
	}
	if viper.IsSet("embeddings") {
		cfg.Embeddings = viper.GetBool("embeddings")
	}
	if viper.IsSet("timeout") {
		cfg.Timeout = viper.GetString("timeout")
	}
	if viper.IsSet("log_file") {
		cfg.LogFile = viper.GetString("log_file")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(configDir, "baitlens.log")
	}

	return cfg, nil
}

// newClient builds the service client from settings.
func newClient(cfg *config.Config, logger *slog.Logger) (*client.Client, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return client.NewClient(cfg.Server, timeout, logger)
}

// cliLogger logs to stderr for one-shot commands.
func cliLogger() *slog.Logger {
	return logging.New(os.Stderr, logging.Level(viper.GetBool("verbose"), false))
}

// runInteractive launches the TUI.
func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closer, err := logging.OpenFile(cfg.LogFile, logging.Level(viper.GetBool("verbose"), true))
	if err != nil {
		return err
	}
	defer closer.Close()

	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("starting tui", "server", c.Server(), "embeddings", cfg.Embeddings)

	p := tea.NewProgram(
		tui.NewApp(c, cfg.Embeddings, logger),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
