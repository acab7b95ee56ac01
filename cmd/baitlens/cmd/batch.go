package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/f3rmion/baitlens/internal/analysis"
	"github.com/f3rmion/baitlens/internal/render"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var batchCmd = &cobra.Command{
	Use:   "batch <items.yaml>",
	Short: "Analyze several texts in one request",
	Long: `Send up to 10 texts to POST /analyze/batch.

The input file is a YAML list of items, each with an id and text:

  - id: headline
    text: "You won't believe what happened next..."
  - id: report
    text: "The committee published its findings on Tuesday..."

Use - to read the list from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().Bool("raw", false, "print the raw JSON response instead of cards")
}

// loadBatch reads and checks the item list.
func loadBatch(r io.Reader) ([]analysis.BatchItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	var items []analysis.BatchItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}

	if len(items) == 0 {
		return nil, errors.New("batch file has no items")
	}
	if len(items) > analysis.MaxBatchItems {
		return nil, fmt.Errorf("batch has %d items, the service accepts at most %d", len(items), analysis.MaxBatchItems)
	}

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("item %d: missing id", i+1)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("item %d: duplicate id %q", i+1, item.ID)
		}
		seen[item.ID] = true
	}

	return items, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	items, err := loadBatch(in)
	if err != nil {
		return err
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	c, err := newClient(cfg, cliLogger())
	if err != nil {
		return err
	}

	res := c.AnalyzeBatch(context.Background(), items, cfg.Embeddings)

	out := cmd.OutOrStdout()
	if raw && res.Raw != "" {
		fmt.Fprintln(out, res.Raw)
	}
	if !res.OK() {
		return errors.New(res.Message)
	}
	if raw {
		return nil
	}

	return writeBatch(out, res.Results)
}

func writeBatch(w io.Writer, results []analysis.BatchResult) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s ==\n", r.ID)
		if err := render.WriteText(w, render.BuildCards(r.Result), render.MetaSummary(r.Result.Meta)); err != nil {
			return err
		}
	}
	return nil
}
