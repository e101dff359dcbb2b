package fbas

import "strconv"

// CanonicalString returns a deterministic encoding of a quorum set such
// that two quorum sets produce byte-identical strings iff they are
// structurally equal (same threshold, same validators in the same
// declared order, same inner quorum sets recursively). It is the content
// identifier the inspector's generator map hashes.
func CanonicalString(q *QuorumSet) string {
	var b []byte
	b = appendCanonical(b, q)
	return string(b)
}

func appendCanonical(b []byte, q *QuorumSet) []byte {
	if q == nil {
		q = &QuorumSet{}
	}
	b = append(b, 't', ':')
	b = strconv.AppendInt(b, int64(q.Threshold), 10)
	b = append(b, ',', 'v', ':', '[')
	for i, v := range q.Validators {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	b = append(b, ']', ',', 'i', ':', '[')
	for i, inner := range q.InnerQuorumSets {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendCanonical(b, inner)
	}
	b = append(b, ']')
	return b
}
