package coalition

// Powerset lazily enumerates every subset of universe (including the
// empty set) without materialising the full 2^n list up front. The exact
// power-index engine drives this to test each candidate
// coalition for containing a quorum, one at a time.
//
// It is a straightforward binary-counter walk over len(universe) bits:
// subset k corresponds to the members of universe whose bit is set in
// the binary representation of k.
type Powerset struct {
	universe []int
	next     uint64
	total    uint64
}

// NewPowerset returns a Powerset over universe. len(universe) must be
// small enough that 2^len(universe) fits a uint64 (the exact engine is
// documented as suitable for universes up to roughly 24 elements).
func NewPowerset(universe []int) *Powerset {
	return &Powerset{
		universe: universe,
		total:    uint64(1) << uint(len(universe)),
	}
}

// Next returns the next subset and true, or (Coalition{}, false) once the
// powerset is exhausted.
func (p *Powerset) Next() (Coalition, bool) {
	if p.next >= p.total {
		return Coalition{}, false
	}
	mask := p.next
	p.next++
	c := New(len(p.universe))
	for i, node := range p.universe {
		if mask&(1<<uint(i)) != 0 {
			c.Add(node)
		}
	}
	return c, true
}

// Len returns the total number of subsets this Powerset will yield.
func (p *Powerset) Len() uint64 {
	return p.total
}
