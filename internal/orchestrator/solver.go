// Package orchestrator wires the instance model, the labeling pricer, the
// restricted master problem, the edge-branching rule, and the branch-and-
// bound tree into the single entry point the CLI and reporting layers call:
// Solve. It is the Go counterpart of the original VRPTWSolver driver class.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/mmghannam/scip-routing/internal/branch"
	"github.com/mmghannam/scip-routing/internal/labeling"
	"github.com/mmghannam/scip-routing/internal/metrics"
	"github.com/mmghannam/scip-routing/internal/mip"
	"github.com/mmghannam/scip-routing/internal/rmp"
	"github.com/mmghannam/scip-routing/internal/tracing"
	"github.com/mmghannam/scip-routing/internal/vrp"
	"github.com/mmghannam/scip-routing/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
)

// Options configures a solve run. It carries the time and node limits of
// pkg/config's SolveConfig; the other SolveConfig fields have no counterpart
// here.
type Options struct {
	TimeLimit time.Duration
	NodeLimit int
	Registry  labeling.Registry // nil uses the in-memory default
}

// Route is one non-zero route in the final solution: its visiting order and
// its LP value (1.0 for an integral route, fractional if the search
// terminated on a bound before branching to integrality).
type Route struct {
	Path  []int
	Cost  float64
	Value float64
}

// Solution is the result of a Solve call.
type Solution struct {
	ObjVal        float64
	Status        string
	Routes        []Route
	NodesExplored int
	Duration      time.Duration
}

// Solve builds the arc-pruned graph, seeds the RMP with one trivial route
// per customer, and runs branch-and-price to completion.
func Solve(ctx context.Context, instance *vrp.Instance, opts Options) (*Solution, error) {
	ctx, span := tracing.StartSolveSpan(ctx, instance.Name)
	defer span.End()

	graph := vrp.BuildGraph(instance)

	r := rmp.New(instance.Customers)
	for _, c := range instance.Customers {
		path := []int{instance.Depot, c, instance.EndDepot}
		cost := instance.Dist(instance.Depot, c) + instance.Dist(c, instance.EndDepot)
		if err := r.AddColumn(&rmp.Column{
			Name:   vrp.CanonicalTuple(path),
			Path:   path,
			Cost:   cost,
			Coeffs: map[int]int{c: 1},
		}); err != nil {
			tracing.SetError(ctx, err)
			return nil, err
		}
	}
	metrics.Get().RecordSeedColumns(len(instance.Customers))

	pricer := labeling.NewPricer(graph, opts.Registry)

	params := mip.DefaultParams()
	if opts.TimeLimit > 0 {
		params.WithTimeLimit(opts.TimeLimit)
	}
	if opts.NodeLimit > 0 {
		params.WithNodeLimit(opts.NodeLimit)
	}

	tree := mip.NewTree(graph, r, params)
	tree.RegisterPricer(pricerAdapter{pricer})
	tree.RegisterBranchRule(branchRuleAdapter{})
	tree.RegisterEventHandler(mip.ForbiddenEdgeFixer{})

	logger.Log.Info("starting branch-and-price solve", "customers", len(instance.Customers))

	result, err := tree.Solve(ctx)
	if err != nil {
		tracing.SetError(ctx, err)
		return nil, err
	}

	routes := make([]Route, 0, len(result.ColumnValues))
	for _, cv := range result.ColumnValues {
		routes = append(routes, Route{
			Path:  cv.Path,
			Cost:  travelCost(instance, cv.Path),
			Value: cv.Value,
		})
	}

	logger.Log.Info("branch-and-price solve finished",
		"status", result.Status.String(), "obj", result.ObjVal,
		"nodes", result.NodesExplored, "duration", result.Duration)
	metrics.Get().RecordSolve(result.Status.String(), result.Duration, result.ObjVal)

	return &Solution{
		ObjVal:        result.ObjVal,
		Status:        result.Status.String(),
		Routes:        routes,
		NodesExplored: result.NodesExplored,
		Duration:      result.Duration,
	}, nil
}

func travelCost(in *vrp.Instance, path []int) float64 {
	var total float64
	for k := 0; k+1 < len(path); k++ {
		total += in.Dist(path[k], path[k+1])
	}
	return total
}

// pricerAdapter satisfies mip.Pricer by translating branch.ForbiddenSet into
// the map[labeling.Edge]bool FindPaths expects and labeling.PricedPath into
// rmp.Column.
type pricerAdapter struct {
	pricer *labeling.Pricer
}

func (a pricerAdapter) OnPrice(ctx context.Context, forbidden branch.ForbiddenSet, duals map[int]float64) (mip.PriceResult, error) {
	labelingForbidden := make(map[labeling.Edge]bool, len(forbidden))
	for e, v := range forbidden {
		labelingForbidden[labeling.Edge(e)] = v
	}

	mode := "non_elementary"
	priceCtx, span := tracing.StartPriceSpan(ctx, 0, mode)
	result := a.pricer.OnPrice(duals, labelingForbidden)
	if result.Elementary {
		metrics.Get().RecordElementaryEscalation()
		mode = "elementary"
		tracing.SetAttributes(priceCtx, attribute.String("pricer.mode", mode))
	}
	span.End()

	columns := make([]*rmp.Column, 0, len(result.NewColumns))
	for _, p := range result.NewColumns {
		route := vrp.Route{Path: p.Path}
		columns = append(columns, &rmp.Column{
			Name:   vrp.CanonicalTuple(p.Path),
			Path:   p.Path,
			Cost:   p.TravelCost,
			Coeffs: route.Multiplicity(),
		})
	}
	metrics.Get().RecordPricerCall(mode, len(columns))
	return mip.PriceResult{NewColumns: columns, LowerBound: result.LowerBound}, nil
}

// branchRuleAdapter satisfies mip.BranchRule via branch.SelectEdge.
type branchRuleAdapter struct{}

func (branchRuleAdapter) BranchExecLP(_ context.Context, columns []branch.ColumnValue) (branch.Edge, error) {
	edge, err := branch.SelectEdge(columns)
	if err != nil {
		return branch.Edge{}, fmt.Errorf("branch rule: %w", err)
	}
	return edge, nil
}
