package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/f3rmion/baitlens/internal/analysis"
	"github.com/f3rmion/baitlens/internal/page"
	"github.com/f3rmion/baitlens/internal/render"
	"github.com/f3rmion/baitlens/internal/samples"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a single text and print the metric cards",
	Long: `Send one text to POST /analyze and print the result as plain text.

The text comes from exactly one of --sample, --text or --file.
Use --file - to read from stdin.

Example:
  baitlens analyze --sample high
  baitlens analyze --file article.txt --embeddings
  pbpaste | baitlens analyze --file - --raw`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("sample", "", "use a sample text (high, neutral, mixed)")
	analyzeCmd.Flags().String("text", "", "text to analyze")
	analyzeCmd.Flags().String("file", "", "read text from a file, or - for stdin")
	analyzeCmd.Flags().Bool("raw", false, "print the raw JSON response instead of cards")
	analyzeCmd.MarkFlagsMutuallyExclusive("sample", "text", "file")
}

// readInput resolves the text from the analyze flags.
func readInput(cmd *cobra.Command) (string, error) {
	sample, _ := cmd.Flags().GetString("sample")
	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("file")

	switch {
	case sample != "":
		s, ok := samples.Lookup(samples.Key(sample))
		if !ok {
			return "", fmt.Errorf("unknown sample %q (want one of %s)", sample, sampleNames())
		}
		return s, nil
	case text != "":
		return text, nil
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading input file: %w", err)
		}
		return string(data), nil
	}
	return "", errors.New("no input: use --sample, --text or --file")
}

func sampleNames() string {
	keys := samples.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd)
	if err != nil {
		return err
	}
	raw, _ := cmd.Flags().GetBool("raw")

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger := cliLogger()
	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	if n := utf8.RuneCountInString(text); n < analysis.MinTextLen || n > analysis.MaxTextLen {
		logger.Warn("text length outside service limits", "length", n,
			"min", analysis.MinTextLen, "max", analysis.MaxTextLen)
	}

	state := page.NewState(cfg.Embeddings)
	state.SetText(text)
	ctrl := page.NewController(state, c, logger)

	if _, err := ctrl.Analyze(context.Background()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if raw && state.Raw() != "" {
		fmt.Fprintln(out, state.Raw())
	}

	if msg, visible := state.Error(); visible {
		fmt.Fprintln(cmd.ErrOrStderr(), state.MetaSummary())
		return errors.New(msg)
	}

	if raw {
		return nil
	}
	return render.WriteText(out, state.Cards(), state.MetaSummary())
}
