// Package game implements the cooperative simple game (component C)
// over an FBAS: an immutable player list and optional precomputed top
// tier, shared by both power-index engines.
package game

import (
	"github.com/cndolo/fbasrank/coalition"
	"github.com/cndolo/fbasrank/fbas"
	"github.com/cndolo/fbasrank/utils/set"
)

// CooperativeGame is the simple voting game whose winning coalitions
// are exactly those that contain a quorum of the underlying Fbas.
type CooperativeGame struct {
	fbas    *fbas.Fbas
	players []fbas.NodeID
	topTier []fbas.NodeID
	hasTT   bool
}

// New constructs a game over f. players is all FBAS nodes, deduplicated
// preserving first occurrence. If topTier is nil, the top tier is left
// unset and must be computed on demand via ComputeTopTier.
func New(f *fbas.Fbas, topTier []fbas.NodeID) *CooperativeGame {
	seen := set.NewSet[fbas.NodeID](len(f.AllNodes()))
	players := make([]fbas.NodeID, 0, len(f.AllNodes()))
	for _, n := range f.AllNodes() {
		if seen.Contains(n) {
			continue
		}
		seen.Add(n)
		players = append(players, n)
	}
	g := &CooperativeGame{fbas: f, players: players}
	if topTier != nil {
		g.topTier = topTier
		g.hasTT = true
	}
	return g
}

// Fbas returns the game's underlying FBAS.
func (g *CooperativeGame) Fbas() *fbas.Fbas { return g.fbas }

// Players returns the deduplicated player list.
func (g *CooperativeGame) Players() []fbas.NodeID { return g.players }

// TopTier returns the game's top tier, computing and caching it via the
// external minimal-quorum finder if it was not supplied at construction.
func (g *CooperativeGame) TopTier() []fbas.NodeID {
	if !g.hasTT {
		g.topTier = ComputeTopTier(g.fbas)
		g.hasTT = true
	}
	return g.topTier
}

// ComputeTopTier returns the union of all nodes appearing in any minimal
// quorum of f.
func ComputeTopTier(f *fbas.Fbas) []fbas.NodeID {
	return fbas.InvolvedNodes(fbas.FindMinimalQuorums(f))
}

// CoalitionSize returns the bitset cardinality of c.
func CoalitionSize(c coalition.Coalition) int {
	return c.Len()
}
