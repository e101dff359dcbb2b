package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cndolo/fbasrank/log"
	"github.com/cndolo/fbasrank/rank"
)

func rankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank [fbas] <algorithm>",
		Short: "Print the score report for an FBAS (reads stdin when [fbas] is omitted)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runRank,
	}
	cmd.Flags().Bool("pretty", false, "Resolve node IDs to public keys in the report")
	cmd.Flags().Bool("ignore-inactive-nodes", false, "Drop inactive nodes before ranking")
	cmd.Flags().Bool("no-quorum-intersection", false, "Skip the quorum-intersection assertion")
	cmd.Flags().Uint64("seed", defaultSeed, "Seed for the approximate power index sampler")
	return cmd
}

func runRank(cmd *cobra.Command, args []string) error {
	path, algStr := splitArgs(args)
	pretty, _ := cmd.Flags().GetBool("pretty")
	ignoreInactive, _ := cmd.Flags().GetBool("ignore-inactive-nodes")
	noQI, _ := cmd.Flags().GetBool("no-quorum-intersection")
	seed, _ := cmd.Flags().GetUint64("seed")

	f, err := loadFbas(path, ignoreInactive)
	if err != nil {
		return err
	}

	alg, samples, err := parseAlgorithm(algStr)
	if err != nil {
		return err
	}

	logger := log.New("info")
	defer logger.Sync()

	scores, err := rank.RankNodes(f, rank.RankRequest{
		Alg:     alg,
		Samples: samples,
		Seed:    seed,
		QICheck: !noQI,
	}, logger)
	if err != nil {
		return fmt.Errorf("rank: %w", err)
	}

	printReport(rank.AssembleReport(f, scores, nil, pretty))
	return nil
}
