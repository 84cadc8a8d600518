package vrp

import "sort"

// Graph is the directed arc set derived from an Instance: arcs (depot, c) for
// every customer, (c, c') between distinct customers, (c, end_depot) for
// every customer, and (depot, end_depot). An arc is omitted up front when it
// can never be traversed feasibly — arriving at j after serving i would
// already violate j's time window — which keeps the labeling pricer's
// expansion loop from wasting cycles on arcs that can never extend a label.
//
// The graph never changes after construction and neighbour lists are sorted
// once at build time, so two runs over the same instance visit arcs in the
// same order (required for the deterministic column-addition order demanded
// by the orchestrator).
type Graph struct {
	instance  *Instance
	neighbors map[int][]int
}

// BuildGraph constructs the arc-pruned graph for an instance.
func BuildGraph(in *Instance) *Graph {
	g := &Graph{
		instance:  in,
		neighbors: make(map[int][]int, in.NumNodes()),
	}

	depot, end := in.Depot, in.EndDepot

	addArc := func(i, j int) {
		if g.feasibleArc(i, j) {
			g.neighbors[i] = append(g.neighbors[i], j)
		}
	}

	for _, c := range in.Customers {
		addArc(depot, c)
		addArc(c, end)
	}
	for _, i := range in.Customers {
		for _, j := range in.Customers {
			if i == j {
				continue
			}
			addArc(i, j)
		}
	}
	addArc(depot, end)

	for node, nbrs := range g.neighbors {
		sort.Ints(nbrs)
		g.neighbors[node] = nbrs
	}

	return g
}

// feasibleArc reports whether a label could ever legally traverse (i, j):
// if departing i at the earliest possible moment and travelling directly to
// j still arrives after j's window closes, no label will ever use (i, j).
func (g *Graph) feasibleArc(i, j int) bool {
	in := g.instance
	arrival := in.Earliest[i] + in.ServiceTimes[i] + in.Dist(i, j)
	return arrival <= in.Latest[j]
}

// Neighbors returns the sorted, deterministic out-neighbours of node.
func (g *Graph) Neighbors(node int) []int {
	return g.neighbors[node]
}

// Instance returns the instance this graph was built from.
func (g *Graph) Instance() *Instance {
	return g.instance
}

// HasArc reports whether (i, j) survived feasibility pruning.
func (g *Graph) HasArc(i, j int) bool {
	for _, n := range g.neighbors[i] {
		if n == j {
			return true
		}
	}
	return false
}
