// Package labeling implements the ESPPRC pricer: a multi-label
// shortest-path search with resource extension and dominance, run in either
// non-elementary or elementary mode depending on the escalation state of the
// current pricing call.
package labeling

// Label is a partial path from the start depot to LastNode, carried only by
// construction — a label is never mutated once created, except for the
// lazy-deletion Removed bit flipped when a later label dominates it.
//
// Parent is an index into the owning Arena, -1 for the root label at the
// start depot. Following Parent repeatedly reconstructs the path walked to
// reach LastNode.
type Label struct {
	LastNode     int
	Cost         float64
	Demand       int
	EarliestTime float64
	Visited      Bitset // populated only in elementary mode
	Parent       int32
	Removed      bool
}

// Dominates reports whether a dominates b — both labels at the same node —
// under the standard resource-dominance relation: cost, demand and time all
// weakly better, at least one strictly, and (in elementary mode) a's visited
// set a subset of b's.
func Dominates(a, b *Label, elementary bool) bool {
	if a.Cost > b.Cost || a.Demand > b.Demand || a.EarliestTime > b.EarliestTime {
		return false
	}
	strict := a.Cost < b.Cost || a.Demand < b.Demand || a.EarliestTime < b.EarliestTime
	if elementary {
		if !a.Visited.SubsetOf(b.Visited) {
			return false
		}
		if !strict && !bitsetEqual(a.Visited, b.Visited) {
			strict = true
		}
	}
	return strict
}

func bitsetEqual(a, b Bitset) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
