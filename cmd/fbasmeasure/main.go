// Command fbasmeasure runs batch accuracy and performance measurements
// of the ranking algorithms over synthetic FBAS families, writing one
// CSV row per (top_tier_size, run).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cndolo/fbasrank/harness"
)

var rootCmd = &cobra.Command{
	Use:   "fbasmeasure",
	Short: "Batch measurements of FBAS ranking algorithms",
	Long: `fbasmeasure sweeps synthetic FBAS families over a grid of top-tier
sizes, measuring either the approximation error of the Monte Carlo power
index against the exact one, or the runtime of every ranking algorithm.`,
}

type commonFlags struct {
	output   string
	update   bool
	maxSize  int
	runs     int
	jobs     int
	fbasType string
	seed     uint64
	noQI     bool
}

func registerCommonFlags(cmd *cobra.Command, flags *commonFlags) {
	cmd.Flags().StringVarP(&flags.output, "out", "o", "", "Output CSV file (stdout if omitted)")
	cmd.Flags().BoolVarP(&flags.update, "update", "u", false, "Update output file with missing results only")
	cmd.Flags().IntVarP(&flags.maxSize, "max-top-tier-size", "m", 0, "Largest FBAS to analyze, in top-tier nodes")
	cmd.Flags().IntVarP(&flags.runs, "runs", "r", 10, "Number of analysis runs per FBAS size")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 1, "Number of worker threads")
	cmd.Flags().StringVar(&flags.fbasType, "fbas-type", "mobilecoin", "Synthetic FBAS family: stellar, mobilecoin or nonsymmetric")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 42, "Base seed for the approximate sampler")
	cmd.Flags().Bool("no-quorum-intersection", false, "Skip the quorum-intersection assertion")
	cmd.MarkFlagRequired("max-top-tier-size")
}

func parseFbasType(s string) (harness.FbasType, error) {
	switch s {
	case "stellar":
		return harness.Stellar, nil
	case "mobilecoin":
		return harness.MobileCoin, nil
	case "nonsymmetric":
		return harness.NonSymmetric, nil
	default:
		return 0, fmt.Errorf("unknown FBAS type %q: want stellar, mobilecoin or nonsymmetric", s)
	}
}

func main() {
	rootCmd.AddCommand(errorCmd(), perfCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
