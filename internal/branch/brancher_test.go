package branch

import (
	"testing"

	"github.com/mmghannam/scip-routing/internal/vrp"
)

func testGraph(t *testing.T) *vrp.Graph {
	t.Helper()
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
	return vrp.BuildGraph(in)
}

func TestSelectEdge_PicksMostFrequentFractionalEdge(t *testing.T) {
	columns := []ColumnValue{
		{Path: []int{0, 1, 4}, Value: 0.5},
		{Path: []int{0, 1, 2, 4}, Value: 0.3},
		{Path: []int{0, 2, 4}, Value: 0.2},
	}

	edge, err := SelectEdge(columns)
	if err != nil {
		t.Fatalf("SelectEdge failed: %v", err)
	}
	if edge != (Edge{0, 1}) {
		t.Errorf("expected edge (0,1) to be selected, got %v", edge)
	}
}

func TestSelectEdge_ErrorsWhenNoFractionalEdge(t *testing.T) {
	columns := []ColumnValue{
		{Path: []int{0, 1, 4}, Value: 1.0},
	}
	_, err := SelectEdge(columns)
	if err == nil {
		t.Fatal("expected error when no arc is fractional")
	}
}

// Invariant 4: branching completeness.
func TestChildren_ForbiddenSetsProperlyExtendParent(t *testing.T) {
	g := testGraph(t)
	parent := ForbiddenSet{}
	e := Edge{0, 1}

	left, right := Children(parent, g, e)

	if !left[e] {
		t.Error("left child must forbid the branching edge")
	}
	if right[e] {
		t.Error("right child forces (i*,j*), it must not itself forbid it")
	}
	for f := range parent {
		if !left[f] || !right[f] {
			t.Error("both children must inherit every parent-forbidden edge")
		}
	}
	if len(right) == 0 {
		t.Error("right child should forbid every other arc touching i* or j*")
	}
}

func TestChildren_RightForcesExclusiveTransit(t *testing.T) {
	g := testGraph(t)
	parent := ForbiddenSet{}
	e := Edge{0, 1} // i*=0 (depot), j*=1

	_, right := Children(parent, g, e)

	// Any other out-edge from the depot must be forced out.
	for _, j := range g.Neighbors(0) {
		if j == 1 {
			continue
		}
		if !right[Edge{0, j}] {
			t.Errorf("expected (0,%d) to be forbidden in the right child", j)
		}
	}
	// (0,1) itself must remain usable in the right child.
	if right[Edge{0, 1}] {
		t.Error("right child must not forbid the forced edge itself")
	}
}
