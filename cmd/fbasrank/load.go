package main

import (
	"fmt"

	"github.com/cndolo/fbasrank/fbas"
	"github.com/cndolo/fbasrank/rank"
)

// splitArgs resolves the <fbas> and <algorithm> positionals: with a
// single argument the FBAS is read from stdin and the argument is the
// algorithm.
func splitArgs(args []string) (path, alg string) {
	if len(args) == 1 {
		return "", args[0]
	}
	return args[0], args[1]
}

func loadFbas(path string, ignoreInactive bool) (*fbas.Fbas, error) {
	opts := fbas.LoadOptions{IgnoreInactiveNodes: ignoreInactive}
	if path == "" || path == "-" {
		f, err := fbas.FromJSONStdin(opts)
		if err != nil {
			return nil, fmt.Errorf("loading FBAS from stdin: %w", err)
		}
		return f, nil
	}
	f, err := fbas.FromJSONFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("loading FBAS from %s: %w", path, err)
	}
	return f, nil
}

func printReport(rows []rank.ReportRow) {
	for _, r := range rows {
		if r.HasReward {
			fmt.Printf("%d\t%s\t%.3f\t%.3f\n", r.NodeID, r.PublicKey, r.Score, r.Reward)
		} else {
			fmt.Printf("%d\t%s\t%.3f\n", r.NodeID, r.PublicKey, r.Score)
		}
	}
}
