package mip

import (
	"context"
	"errors"
	"testing"

	"github.com/mmghannam/scip-routing/internal/branch"
	"github.com/mmghannam/scip-routing/internal/rmp"
	"github.com/mmghannam/scip-routing/internal/vrp"
)

type noColumnsPricer struct{}

func (noColumnsPricer) OnPrice(context.Context, branch.ForbiddenSet, map[int]float64) (PriceResult, error) {
	return PriceResult{}, nil
}

type realBranchRule struct{}

func (realBranchRule) BranchExecLP(ctx context.Context, columns []branch.ColumnValue) (branch.Edge, error) {
	return branch.SelectEdge(columns)
}

func singleCustomerGraph(t *testing.T) *vrp.Graph {
	t.Helper()
	demands := []int{0, 1}
	earliest := []float64{0, 0}
	latest := []float64{1000, 1000}
	service := []float64{0, 0}
	dist := [][]float64{{0, 10}, {10, 0}}
	in, err := vrp.NewInstance("single", 10, demands, earliest, latest, service, dist, nil)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	return vrp.BuildGraph(in)
}

func TestSolve_RequiresAllThreeCallbacks(t *testing.T) {
	g := singleCustomerGraph(t)
	r := rmp.New([]int{1})

	tree := NewTree(g, r, nil)
	if _, err := tree.Solve(context.Background()); !errors.Is(err, ErrNoPricerRegistered) {
		t.Errorf("expected ErrNoPricerRegistered, got %v", err)
	}

	tree.RegisterPricer(noColumnsPricer{})
	if _, err := tree.Solve(context.Background()); !errors.Is(err, ErrNoBranchRuleRegistered) {
		t.Errorf("expected ErrNoBranchRuleRegistered, got %v", err)
	}

	tree.RegisterBranchRule(realBranchRule{})
	if _, err := tree.Solve(context.Background()); !errors.Is(err, ErrNoEventHandlerAttached) {
		t.Errorf("expected ErrNoEventHandlerAttached, got %v", err)
	}
}

func TestSolve_RootIntegralSolutionNeedsNoBranching(t *testing.T) {
	g := singleCustomerGraph(t)
	r := rmp.New([]int{1})
	if err := r.AddColumn(&rmp.Column{
		Name:   "(0, 1, 2)",
		Path:   []int{0, 1, 2},
		Cost:   20,
		Coeffs: map[int]int{1: 1},
	}); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}

	tree := NewTree(g, r, nil)
	tree.RegisterPricer(noColumnsPricer{})
	tree.RegisterBranchRule(realBranchRule{})
	tree.RegisterEventHandler(ForbiddenEdgeFixer{})

	result, err := tree.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.Status != StatusOptimal {
		t.Errorf("Status = %v, want optimal", result.Status)
	}
	if result.ObjVal != 20 {
		t.Errorf("ObjVal = %v, want 20", result.ObjVal)
	}
	if result.NodesExplored != 1 {
		t.Errorf("NodesExplored = %d, want 1 (no branching needed)", result.NodesExplored)
	}
	if len(result.ColumnValues) != 1 || result.ColumnValues[0].Value != 1 {
		t.Errorf("expected exactly one column at value 1, got %v", result.ColumnValues)
	}
}

func TestSolve_ZeroNodeLimitMeansUnlimited(t *testing.T) {
	g := singleCustomerGraph(t)
	r := rmp.New([]int{1})
	if err := r.AddColumn(&rmp.Column{
		Name:   "(0, 1, 2)",
		Path:   []int{0, 1, 2},
		Cost:   20,
		Coeffs: map[int]int{1: 1},
	}); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}

	params := DefaultParams().WithNodeLimit(0)
	tree := NewTree(g, r, params)
	tree.RegisterPricer(noColumnsPricer{})
	tree.RegisterBranchRule(realBranchRule{})
	tree.RegisterEventHandler(ForbiddenEdgeFixer{})

	result, err := tree.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	// A zero node limit is "unlimited" per DefaultParams' convention, so this
	// should still converge to optimal rather than stopping immediately.
	if result.Status != StatusOptimal {
		t.Errorf("Status = %v, want optimal", result.Status)
	}
}
