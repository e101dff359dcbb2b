// Package coalition provides a compact bitset representation of node
// coalitions, shared by the cooperative-game and power-index engines.
//
// Coalition deliberately works in plain int rather than fbas.NodeID: the
// fbas package itself accepts and returns coalitions (contains_quorum),
// so depending on fbas here would close an import cycle. NodeID is, and
// is documented to be, a dense non-negative int index, so the conversion
// at call sites is a no-op.
package coalition

import "github.com/bits-and-blooms/bitset"

// Coalition is a set of node indices backed by a bitset, cheap to copy
// via cloning and cheap to use as a map key via its canonical string form.
type Coalition struct {
	bits *bitset.BitSet
}

// Of returns a Coalition containing exactly the given nodes.
func Of(nodes ...int) Coalition {
	c := New(0)
	for _, n := range nodes {
		c.Add(n)
	}
	return c
}

// New returns an empty Coalition sized to hold IDs up to capacity-1
// without reallocating.
func New(capacity int) Coalition {
	if capacity < 0 {
		capacity = 0
	}
	return Coalition{bits: bitset.New(uint(capacity))}
}

// Add inserts a node into the coalition.
func (c *Coalition) Add(n int) {
	if c.bits == nil {
		c.bits = bitset.New(0)
	}
	c.bits.Set(uint(n))
}

// Remove deletes a node from the coalition.
func (c *Coalition) Remove(n int) {
	if c.bits == nil {
		return
	}
	c.bits.Clear(uint(n))
}

// Contains reports whether n is a member.
func (c Coalition) Contains(n int) bool {
	return c.bits != nil && c.bits.Test(uint(n))
}

// Len returns the coalition's cardinality.
func (c Coalition) Len() int {
	if c.bits == nil {
		return 0
	}
	return int(c.bits.Count())
}

// Clone returns an independent copy.
func (c Coalition) Clone() Coalition {
	if c.bits == nil {
		return New(0)
	}
	return Coalition{bits: c.bits.Clone()}
}

// WithAdded returns a clone with n added, leaving c unmodified.
func (c Coalition) WithAdded(n int) Coalition {
	clone := c.Clone()
	clone.Add(n)
	return clone
}

// WithRemoved returns a clone with n removed, leaving c unmodified.
func (c Coalition) WithRemoved(n int) Coalition {
	clone := c.Clone()
	clone.Remove(n)
	return clone
}

// Members returns the coalition's nodes in ascending order, or nil for
// an empty coalition.
func (c Coalition) Members() []int {
	if c.bits == nil || c.bits.None() {
		return nil
	}
	members := make([]int, 0, c.bits.Count())
	for i, ok := c.bits.NextSet(0); ok; i, ok = c.bits.NextSet(i + 1) {
		members = append(members, int(i))
	}
	return members
}

// Key returns a value suitable for use as a map key, since bitset.BitSet
// itself is not comparable.
func (c Coalition) Key() string {
	if c.bits == nil {
		return ""
	}
	return c.bits.String()
}

// Equal reports whether two coalitions have the same members.
func (c Coalition) Equal(other Coalition) bool {
	return c.Key() == other.Key()
}
