package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cndolo/fbasrank/rank"
)

// parseAlgorithm parses the <algorithm> CLI argument: "node-rank",
// "exact-power-index", or "approx-power-index{samples=N}".
func parseAlgorithm(s string) (rank.Algorithm, int, error) {
	switch {
	case s == "node-rank":
		return rank.NodeRank, 0, nil
	case s == "exact-power-index":
		return rank.PowerIndexEnum, 0, nil
	case strings.HasPrefix(s, "approx-power-index"):
		samples, err := parseSamples(s)
		if err != nil {
			return 0, 0, err
		}
		return rank.PowerIndexApprox, samples, nil
	default:
		return 0, 0, fmt.Errorf("unknown algorithm %q: want node-rank, exact-power-index, or approx-power-index{samples=N}", s)
	}
}

func parseSamples(s string) (int, error) {
	rest := strings.TrimPrefix(s, "approx-power-index")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return 0, fmt.Errorf("approx-power-index requires {samples=N}")
	}
	rest = strings.TrimPrefix(rest, "{")
	rest = strings.TrimSuffix(rest, "}")
	parts := strings.SplitN(rest, "=", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "samples" {
		return 0, fmt.Errorf("approx-power-index argument must look like {samples=N}, got %q", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid sample count in %q", s)
	}
	return n, nil
}
