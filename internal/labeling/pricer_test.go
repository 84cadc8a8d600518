package labeling

import (
	"math"
	"testing"

	"github.com/mmghannam/scip-routing/internal/vrp"
)

func buildTestGraph(t *testing.T) (*vrp.Instance, *vrp.Graph) {
	t.Helper()
	// depot=0, customers 1,2,3, capacity 10
	demands := []int{0, 3, 4, 2}
	earliest := []float64{0, 0, 0, 0}
	latest := []float64{1000, 1000, 1000, 1000}
	service := []float64{0, 1, 1, 1}
	dist := [][]float64{
		{0, 5, 8, 6},
		{5, 0, 4, 7},
		{8, 4, 0, 3},
		{6, 7, 3, 0},
	}
	in, err := vrp.NewInstance("test", 10, demands, earliest, latest, service, dist, nil)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	return in, vrp.BuildGraph(in)
}

// Invariant 1: feasibility of emitted columns.
func TestFindPaths_EmittedColumnsAreFeasible(t *testing.T) {
	in, g := buildTestGraph(t)
	duals := map[int]float64{1: 11, 2: 0, 3: 0}

	paths, _ := FindPaths(g, duals, nil, false)
	if len(paths) == 0 {
		t.Fatal("expected at least one negative-reduced-cost path")
	}

	for _, p := range paths {
		demand := 0
		for _, node := range p.Path[1 : len(p.Path)-1] {
			demand += in.Demands[node]
		}
		if demand > in.Capacity {
			t.Errorf("path %v exceeds capacity: %d > %d", p.Path, demand, in.Capacity)
		}
		for i, node := range p.Path {
			if p.StartTimes[i] < in.Earliest[node]-1e-9 || p.StartTimes[i] > in.Latest[node]+1e-9 {
				t.Errorf("path %v violates window at node %d: time %f not in [%f, %f]",
					p.Path, node, p.StartTimes[i], in.Earliest[node], in.Latest[node])
			}
		}
	}
}

// Invariant 2: reduced-cost sign.
func TestFindPaths_ReducedCostSign(t *testing.T) {
	_, g := buildTestGraph(t)
	duals := map[int]float64{1: 4, 2: 3, 3: 2}

	paths, _ := FindPaths(g, duals, nil, false)
	for _, p := range paths {
		if p.ReducedCost >= -epsilon {
			t.Errorf("path %v has non-negative reduced cost %f", p.Path, p.ReducedCost)
		}
	}
}

func TestFindPaths_NoNegativeReducedCostWhenDualsAreZero(t *testing.T) {
	_, g := buildTestGraph(t)

	paths, minReducedCost := FindPaths(g, map[int]float64{}, nil, true)
	if len(paths) != 0 {
		t.Errorf("expected no negative-reduced-cost paths with zero duals, got %v", paths)
	}
	if minReducedCost < 0 {
		t.Errorf("expected non-negative minimum reduced cost, got %f", minReducedCost)
	}
}

func TestFindPaths_ForbiddenEdgeIsNeverTraversed(t *testing.T) {
	_, g := buildTestGraph(t)
	duals := map[int]float64{1: 4, 2: 3, 3: 2}
	forbidden := map[Edge]bool{{0, 1}: true}

	paths, _ := FindPaths(g, duals, forbidden, false)
	for _, p := range paths {
		for k := 0; k+1 < len(p.Path); k++ {
			if forbidden[Edge{p.Path[k], p.Path[k+1]}] {
				t.Errorf("path %v traverses forbidden edge (%d,%d)", p.Path, p.Path[k], p.Path[k+1])
			}
		}
	}
}

// Boundary: single customer instance — only the trivial route exists.
func TestFindPaths_SingleCustomer(t *testing.T) {
	demands := []int{0, 5}
	earliest := []float64{0, 0}
	latest := []float64{100, 100}
	service := []float64{0, 1}
	dist := [][]float64{{0, 10}, {10, 0}}
	in, err := vrp.NewInstance("single", 10, demands, earliest, latest, service, dist, nil)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	g := vrp.BuildGraph(in)

	paths, _ := FindPaths(g, map[int]float64{1: 100}, nil, true)
	if len(paths) != 1 {
		t.Fatalf("expected exactly one path for a single-customer instance, got %d", len(paths))
	}
	want := []int{in.Depot, 1, in.EndDepot}
	got := paths[0].Path
	if len(got) != len(want) {
		t.Fatalf("expected path %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("expected path %v, got %v", want, got)
		}
	}
	if math.Abs(paths[0].TravelCost-20) > 1e-9 {
		t.Errorf("expected travel cost 20, got %f", paths[0].TravelCost)
	}
}

func TestDominates_RequiresStrictImprovement(t *testing.T) {
	a := &Label{Cost: 1, Demand: 1, EarliestTime: 1}
	b := &Label{Cost: 1, Demand: 1, EarliestTime: 1}
	if Dominates(a, b, false) {
		t.Error("identical labels should not dominate each other")
	}

	c := &Label{Cost: 0, Demand: 1, EarliestTime: 1}
	if !Dominates(c, b, false) {
		t.Error("strictly cheaper label with equal other resources should dominate")
	}
}

func TestDominates_ElementaryRequiresVisitedSubset(t *testing.T) {
	va := NewBitset(4)
	va.Set(1)
	vb := NewBitset(4)
	vb.Set(1)
	vb.Set(2)

	a := &Label{Cost: 1, Demand: 1, EarliestTime: 1, Visited: va}
	b := &Label{Cost: 1, Demand: 1, EarliestTime: 1, Visited: vb}

	if !Dominates(a, b, true) {
		t.Error("a with a subset visited-set and equal resources should dominate b")
	}
	if Dominates(b, a, true) {
		t.Error("b's visited set is not a subset of a's, so b should not dominate a")
	}
}
