// Package validators resolves FBAS NodeIds to the stellarbeat public
// keys they were loaded from, for pretty-printed reports.
package validators

import "github.com/cndolo/fbasrank/fbas"

// ToPublicKeys returns, for each id in ids, its public key as recorded
// by f at load time, or the empty string if id is out of range.
func ToPublicKeys(ids []fbas.NodeID, f *fbas.Fbas) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		pk, ok := f.PublicKey(id)
		if !ok {
			continue
		}
		keys[i] = pk
	}
	return keys
}
