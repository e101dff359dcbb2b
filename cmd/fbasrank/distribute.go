package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cndolo/fbasrank/log"
	"github.com/cndolo/fbasrank/rank"
)

func distributeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute [fbas] <algorithm>",
		Short: "Print the reward report for an FBAS (reads stdin when [fbas] is omitted)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runDistribute,
	}
	cmd.Flags().Float64("reward", 1.0, "Amount to be shared among the nodes")
	cmd.Flags().Bool("pretty", false, "Resolve node IDs to public keys in the report")
	cmd.Flags().Bool("ignore-inactive-nodes", false, "Drop inactive nodes before ranking")
	cmd.Flags().Bool("no-quorum-intersection", false, "Skip the quorum-intersection assertion")
	cmd.Flags().Uint64("seed", defaultSeed, "Seed for the approximate power index sampler")
	return cmd
}

func runDistribute(cmd *cobra.Command, args []string) error {
	path, algStr := splitArgs(args)
	reward, _ := cmd.Flags().GetFloat64("reward")
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

	qiCheck := !noQI
	var scores, rewards []float64
	switch alg {
	case rank.NodeRank:
		scores, rewards = rank.GraphTheoryDistribution(f, reward, logger)
	case rank.PowerIndexEnum:
		scores, rewards, err = rank.ExactGameTheoryDistribution(f, reward, nil, qiCheck, logger)
	case rank.PowerIndexApprox:
		scores, rewards, err = rank.ApproxGameTheoryDistribution(f, samples, reward, qiCheck, seed, logger)
	}
	if err != nil {
		return fmt.Errorf("distribute: %w", err)
	}

	printReport(rank.AssembleReport(f, scores, rewards, pretty))
	return nil
}
