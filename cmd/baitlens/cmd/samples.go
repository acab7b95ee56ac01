package cmd

import (
	"fmt"

	"github.com/f3rmion/baitlens/internal/samples"
	"github.com/spf13/cobra"
)

var samplesCmd = &cobra.Command{
	Use:   "samples [name]",
	Short: "List the sample texts or print one",
	Long: `Without arguments, list the sample names. With a name, print that
sample's text so it can be piped elsewhere.

Example:
  baitlens samples
  baitlens samples mixed`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSamples,
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}

func runSamples(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, key := range samples.Keys() {
			fmt.Fprintln(out, key)
		}
		return nil
	}

	text, ok := samples.Lookup(samples.Key(args[0]))
	if !ok {
		return fmt.Errorf("unknown sample %q (want one of %s)", args[0], sampleNames())
	}
	fmt.Fprintln(out, text)
	return nil
}
