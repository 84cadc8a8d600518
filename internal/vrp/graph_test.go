package vrp

import "testing"

func TestBuildGraph_ContainsExpectedArcs(t *testing.T) {
	in := smallInstance(t)
	g := BuildGraph(in)

	if !g.HasArc(in.Depot, 1) {
		t.Error("expected arc depot->1")
	}
	if !g.HasArc(1, in.EndDepot) {
		t.Error("expected arc 1->end_depot")
	}
	if !g.HasArc(1, 2) {
		t.Error("expected arc 1->2")
	}
	if g.HasArc(1, 1) {
		t.Error("did not expect a self loop")
	}
}

func TestBuildGraph_NeighborsAreSortedAndDeterministic(t *testing.T) {
	in := smallInstance(t)
	g1 := BuildGraph(in)
	g2 := BuildGraph(in)

	n1 := g1.Neighbors(in.Depot)
	n2 := g2.Neighbors(in.Depot)
	if len(n1) != len(n2) {
		t.Fatalf("neighbor count mismatch: %d vs %d", len(n1), len(n2))
	}
	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("non-deterministic neighbor order at %d: %d vs %d", i, n1[i], n2[i])
		}
	}
	for i := 1; i < len(n1); i++ {
		if n1[i-1] > n1[i] {
			t.Fatalf("neighbors not sorted: %v", n1)
		}
	}
}

func TestBuildGraph_PrunesInfeasibleArc(t *testing.T) {
	// customer 1's window closes at 2; travelling from depot (earliest 0)
	// to 1 takes 100, so the arc can never be used.
	demands := []int{0, 1, 1}
	earliest := []float64{0, 0, 0}
	latest := []float64{1000, 2, 1000}
	service := []float64{0, 0, 0}
	dist := [][]float64{
		{0, 100, 5},
		{100, 0, 5},
		{5, 5, 0},
	}
	in, err := NewInstance("pruned", 10, demands, earliest, latest, service, dist, nil)
	if err != nil {
		t.Fatalf("NewInstance failed: %v", err)
	}
	g := BuildGraph(in)
	if g.HasArc(in.Depot, 1) {
		t.Error("expected arc depot->1 to be pruned as infeasible")
	}
}
