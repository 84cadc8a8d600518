package vrp

import (
	"fmt"
	"strings"
)

// Route is a column: an ordered visit of (depot, c_1, ..., c_k, end_depot)
// together with its travel cost and customer-multiplicity vector. In
// elementary routes every customer occurs at most once.
type Route struct {
	Path       []int   // depot, c_1, ..., c_k, end_depot
	Cost       float64 // sum of arc distances, no dual corrections
	StartTimes []float64
}

// Multiplicity returns a[c] = number of occurrences of customer c on this
// route, for the covering-constraint coefficient of each customer.
func (r *Route) Multiplicity() map[int]int {
	mult := make(map[int]int, len(r.Path))
	for _, node := range r.Path[1 : len(r.Path)-1] {
		mult[node]++
	}
	return mult
}

// Edges returns the consecutive (i, j) arcs of the path.
func (r *Route) Edges() [][2]int {
	edges := make([][2]int, 0, len(r.Path)-1)
	for k := 0; k+1 < len(r.Path); k++ {
		edges = append(edges, [2]int{r.Path[k], r.Path[k+1]})
	}
	return edges
}

// CanonicalName renders the path as the persisted variable-naming
// convention: the textual tuple form of the node sequence, e.g. "(0, 3, 7, 11)".
func (r *Route) CanonicalName() string {
	return CanonicalTuple(r.Path)
}

// CanonicalTuple renders a node sequence as "(n0, n1, ..., nk)".
func CanonicalTuple(path []int) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
