package orchestrator

import (
	"context"
	"testing"

	"github.com/mmghannam/scip-routing/internal/vrp"
)

// Separate trivial routes remain optimal: travelling directly between the
// two customers is prohibitively expensive, so the root LP stays at its
// initial seed columns and the search never needs to branch.
func TestSolve_TwoCustomersNoBeneficialCombinedRoute(t *testing.T) {
	demands := []int{0, 2, 2}
	earliest := []float64{0, 0, 0}
	latest := []float64{1000, 1000, 1000}
	service := []float64{0, 0, 0}
	dist := [][]float64{
		{0, 5, 7},
		{5, 0, 100},
		{7, 100, 0},
	}
	in, err := vrp.NewInstance("two-customers", 10, demands, earliest, latest, service, dist, nil)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}

	sol, err := Solve(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Status != "optimal" {
		t.Errorf("Status = %q, want optimal", sol.Status)
	}
	if sol.ObjVal != 24 {
		t.Errorf("ObjVal = %v, want 24 (10 + 14, the two trivial routes)", sol.ObjVal)
	}
	if len(sol.Routes) != 2 {
		t.Fatalf("expected exactly two routes, got %d: %v", len(sol.Routes), sol.Routes)
	}
	if sol.NodesExplored != 1 {
		t.Errorf("NodesExplored = %d, want 1 (no branching needed)", sol.NodesExplored)
	}
}

// Single-customer boundary case: the only feasible route is the trivial
// depot -> customer -> end_depot round trip.
func TestSolve_SingleCustomer(t *testing.T) {
	demands := []int{0, 4}
	earliest := []float64{0, 0}
	latest := []float64{1000, 1000}
	service := []float64{0, 0}
	dist := [][]float64{{0, 15}, {15, 0}}
	in, err := vrp.NewInstance("single", 10, demands, earliest, latest, service, dist, nil)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}

	sol, err := Solve(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.ObjVal != 30 {
		t.Errorf("ObjVal = %v, want 30 (d(depot,1) + d(1,depot))", sol.ObjVal)
	}
	if len(sol.Routes) != 1 {
		t.Fatalf("expected exactly one route, got %d", len(sol.Routes))
	}
}
