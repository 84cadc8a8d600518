package labeling

import (
	"sort"

	"github.com/mmghannam/scip-routing/internal/vrp"
)

// sortPaths orders yielded paths by the canonical string form of their node
// tuple, so that two runs over identical duals and forbidden edges add
// columns to the RMP in the same order — required for a reproducible
// branch-and-bound search tree.
func sortPaths(paths []PricedPath) {
	sort.Slice(paths, func(i, j int) bool {
		return vrp.CanonicalTuple(paths[i].Path) < vrp.CanonicalTuple(paths[j].Path)
	})
}
