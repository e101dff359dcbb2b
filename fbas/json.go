package fbas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInactiveFilterOnStdin is returned when inactive-node filtering is
// requested while reading an FBAS from standard input, which the loader
// does not support.
var ErrInactiveFilterOnStdin = errors.New("fbas: --ignore-inactive-nodes is not supported when reading from stdin")

// LoadOptions controls how a stellarbeat.org "nodes" JSON document is
// turned into an Fbas.
type LoadOptions struct {
	// IgnoreInactiveNodes drops nodes with "active": false from the
	// input before NodeIDs are assigned, so downstream indices refer
	// only to the filtered set.
	IgnoreInactiveNodes bool
}

// stellarbeatQuorumSet mirrors the recursive quorumSet object in
// stellarbeat.org's "nodes" JSON format.
type stellarbeatQuorumSet struct {
	Threshold       int                     `json:"threshold"`
	Validators      []string                `json:"validators"`
	InnerQuorumSets []*stellarbeatQuorumSet `json:"innerQuorumSets"`
}

type stellarbeatNode struct {
	PublicKey string                `json:"publicKey"`
	QuorumSet *stellarbeatQuorumSet `json:"quorumSet"`
	Active    *bool                 `json:"active"`
}

// FromJSONFile loads an Fbas from a stellarbeat.org "nodes" JSON file.
func FromJSONFile(path string, opts LoadOptions) (*Fbas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fbas: reading %s: %w", path, err)
	}
	return FromJSONBytes(data, opts)
}

// FromJSONStr loads an Fbas from a stellarbeat.org "nodes" JSON string.
func FromJSONStr(s string, opts LoadOptions) (*Fbas, error) {
	return FromJSONBytes([]byte(s), opts)
}

// FromJSONStdin loads an Fbas from stellarbeat.org "nodes" JSON read off
// os.Stdin. Inactive-node filtering is not supported in this mode.
func FromJSONStdin(opts LoadOptions) (*Fbas, error) {
	if opts.IgnoreInactiveNodes {
		return nil, ErrInactiveFilterOnStdin
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("fbas: reading stdin: %w", err)
	}
	return FromJSONBytes(data, opts)
}

// FromJSONBytes loads an Fbas from raw stellarbeat.org "nodes" JSON.
func FromJSONBytes(data []byte, opts LoadOptions) (*Fbas, error) {
	var raw []stellarbeatNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fbas: invalid nodes JSON: %w", err)
	}

	if opts.IgnoreInactiveNodes {
		filtered := raw[:0:0]
		for _, n := range raw {
			if n.Active == nil || *n.Active {
				filtered = append(filtered, n)
			}
		}
		raw = filtered
	}

	pkToID := make(map[string]NodeID, len(raw))
	for i, n := range raw {
		pkToID[n.PublicKey] = NodeID(i)
	}

	quorumSets := make([]*QuorumSet, len(raw))
	publicKeys := make([]string, len(raw))
	for i, n := range raw {
		publicKeys[i] = n.PublicKey
		qs, err := convertQuorumSet(n.QuorumSet, pkToID, 0)
		if err != nil {
			return nil, fmt.Errorf("fbas: node %q: %w", n.PublicKey, err)
		}
		quorumSets[i] = qs
	}

	return New(quorumSets, publicKeys), nil
}

func convertQuorumSet(q *stellarbeatQuorumSet, pkToID map[string]NodeID, depth int) (*QuorumSet, error) {
	if q == nil {
		return &QuorumSet{}, nil
	}
	if depth > MaxNestingDepth {
		return nil, fmt.Errorf("quorum set nesting exceeds max depth %d", MaxNestingDepth)
	}
	if q.Threshold < 1 {
		return nil, fmt.Errorf("quorum set threshold must be >= 1, got %d", q.Threshold)
	}

	out := &QuorumSet{Threshold: q.Threshold}
	for _, pk := range q.Validators {
		id, ok := pkToID[pk]
		if !ok {
			// References a node filtered out (e.g. inactive) or
			// absent from the input; it can never help form a quorum.
			continue
		}
		out.Validators = append(out.Validators, id)
	}
	for _, inner := range q.InnerQuorumSets {
		innerQs, err := convertQuorumSet(inner, pkToID, depth+1)
		if err != nil {
			return nil, err
		}
		out.InnerQuorumSets = append(out.InnerQuorumSets, innerQs)
	}
	if out.Threshold > len(out.Validators)+len(out.InnerQuorumSets) {
		return nil, fmt.Errorf("quorum set threshold %d exceeds %d members", out.Threshold, len(out.Validators)+len(out.InnerQuorumSets))
	}
	return out, nil
}
