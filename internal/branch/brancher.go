package branch

import (
	"sort"

	"github.com/mmghannam/scip-routing/internal/vrp"
	"github.com/mmghannam/scip-routing/pkg/apperror"
	"github.com/mmghannam/scip-routing/pkg/domain"
)

// Edge is a directed arc (i, j).
type Edge [2]int

// ColumnValue is the minimal view of an RMP column the brancher needs: its
// node sequence and its current LP value.
type ColumnValue struct {
	Path  []int
	Value float64
}

// ForbiddenSet is an immutable set of forbidden edges carried by a
// branch-and-bound node.
type ForbiddenSet map[Edge]bool

// Clone returns an independent copy of f.
func (f ForbiddenSet) Clone() ForbiddenSet {
	out := make(ForbiddenSet, len(f))
	for e := range f {
		out[e] = true
	}
	return out
}

// With returns a copy of f with edges added.
func (f ForbiddenSet) With(edges ...Edge) ForbiddenSet {
	out := f.Clone()
	for _, e := range edges {
		out[e] = true
	}
	return out
}

// AggregatedEdgeValues computes y_ij = sum of x_r over every route r using
// arc (i, j).
func AggregatedEdgeValues(columns []ColumnValue) map[Edge]float64 {
	values := make(map[Edge]float64)
	for _, col := range columns {
		for k := 0; k+1 < len(col.Path); k++ {
			values[Edge{col.Path[k], col.Path[k+1]}] += col.Value
		}
	}
	return values
}

// FractionalEdges returns the arcs whose aggregated value lies strictly
// between epsilon and 1-epsilon.
func FractionalEdges(columns []ColumnValue) []Edge {
	values := AggregatedEdgeValues(columns)
	var fractional []Edge
	for e, y := range values {
		if domain.FloatGreater(y, 0) && domain.FloatLess(y, 1) {
			fractional = append(fractional, e)
		}
	}
	sort.Slice(fractional, func(i, j int) bool {
		if fractional[i][0] != fractional[j][0] {
			return fractional[i][0] < fractional[j][0]
		}
		return fractional[i][1] < fractional[j][1]
	})
	return fractional
}

// SelectEdge picks the fractional arc used by the largest number of existing
// route variables — forbidding a frequently-used edge invalidates many
// columns at once. Ties are broken by the lowest (i, j) for determinism.
func SelectEdge(columns []ColumnValue) (Edge, error) {
	fractional := FractionalEdges(columns)
	if len(fractional) == 0 {
		return Edge{}, apperror.New(apperror.CodeInvalidAlgorithm, "fractional LP has no fractional aggregated edge")
	}

	counts := make(map[Edge]int, len(fractional))
	fracSet := make(map[Edge]bool, len(fractional))
	for _, e := range fractional {
		fracSet[e] = true
	}
	for _, col := range columns {
		for k := 0; k+1 < len(col.Path); k++ {
			e := Edge{col.Path[k], col.Path[k+1]}
			if fracSet[e] {
				counts[e]++
			}
		}
	}

	best := fractional[0]
	for _, e := range fractional[1:] {
		if counts[e] > counts[best] {
			best = e
		}
	}
	return best, nil
}

// Children computes the two child forbidden-edge sets for branching on edge
// e = (i*, j*), given the graph that defines the full arc universe.
//
// Left (forbid): parent's set plus {(i*, j*)}.
// Right (force): parent's set plus every other arc leaving i* and every
// other arc entering j* — forcing any route through i* to proceed directly
// to j*, without an explicit forbidden-set constraint on (i*, j*) itself.
func Children(parent ForbiddenSet, g *vrp.Graph, e Edge) (left, right ForbiddenSet) {
	iStar, jStar := e[0], e[1]

	left = parent.With(e)

	var forced []Edge
	for _, j := range g.Neighbors(iStar) {
		if j != jStar {
			forced = append(forced, Edge{iStar, j})
		}
	}
	for node := range allNodes(g) {
		for _, j := range g.Neighbors(node) {
			if j == jStar && node != iStar {
				forced = append(forced, Edge{node, j})
			}
		}
	}
	right = parent.With(forced...)
	return left, right
}

func allNodes(g *vrp.Graph) map[int]bool {
	in := g.Instance()
	nodes := make(map[int]bool, in.NumNodes())
	nodes[in.Depot] = true
	nodes[in.EndDepot] = true
	for _, c := range in.Customers {
		nodes[c] = true
	}
	return nodes
}
