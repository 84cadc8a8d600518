// Package mip is a lightweight stand-in for the external branch-and-bound
// framework: a best-first node tree that drives column generation through a
// registered pricer, branching rule, and node-focused event handler. No
// general-purpose Go MILP framework exists in the ecosystem the corpus draws
// on, so this package implements just the slice of behaviour the VRPTW
// branch-and-price driver needs — it is not a general MIP solver.
package mip

import (
	"container/heap"
	"context"
	"errors"
	"math"
	"time"

	"github.com/mmghannam/scip-routing/internal/branch"
	"github.com/mmghannam/scip-routing/internal/metrics"
	"github.com/mmghannam/scip-routing/internal/rmp"
	"github.com/mmghannam/scip-routing/internal/vrp"
	"github.com/mmghannam/scip-routing/pkg/domain"
	"github.com/mmghannam/scip-routing/pkg/logger"
)

// Sentinel errors returned by Tree.Solve. Checkable with errors.Is().
var (
	ErrNoPricerRegistered     = errors.New("mip: no pricer registered")
	ErrNoBranchRuleRegistered = errors.New("mip: no branch rule registered")
	ErrNoEventHandlerAttached = errors.New("mip: no event handler registered")
)

// EventType enumerates the node-lifecycle events a handler can subscribe to.
// The framework interface this mirrors supports more event types; only the
// one the branch-and-price driver needs is modelled.
type EventType int

const (
	// NodeFocused fires once a node is popped from the queue, before its
	// LP is (re-)solved.
	NodeFocused EventType = iota
)

// Status reports how the search terminated.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusTimeLimit
	StatusNodeLimit
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeLimit:
		return "time_limit"
	case StatusNodeLimit:
		return "node_limit"
	default:
		return "unknown"
	}
}

// PriceResult is what a Pricer returns from OnPrice: the new columns it
// found (possibly none) and, when it ran in elementary mode and exhausted
// the search, a valid dual lower bound on the node's LP optimum.
type PriceResult struct {
	NewColumns []*rmp.Column
	LowerBound *float64
}

// Pricer is the callback the framework invokes once per LP re-optimisation
// within a node, mirroring SCIP's on_price / pricer_redcost.
type Pricer interface {
	OnPrice(ctx context.Context, forbidden branch.ForbiddenSet, duals map[int]float64) (PriceResult, error)
}

// BranchRule selects the fractional edge to branch on, mirroring
// branch_exec_lp.
type BranchRule interface {
	BranchExecLP(ctx context.Context, columns []branch.ColumnValue) (branch.Edge, error)
}

// EventHandler reacts to node lifecycle events, mirroring event_exec.
type EventHandler interface {
	EventExec(ctx context.Context, event EventType, node *Node, r *rmp.RMP) error
}

// Node is one entry in the branch-and-bound tree.
type Node struct {
	ID         int
	Parent     int
	Depth      int
	Forbidden  branch.ForbiddenSet
	LowerBound float64
}

// Params mirrors the framework parameter controls the orchestrator toggles
// before optimisation. Tree.Solve reads only TimeLimit and NodeLimit; the
// stand-in has no primal heuristics, presolve, separation or propagation,
// so the Disable* flags change nothing, ObjectiveIntegral does not alter
// pruning (nodes are pruned on the plain LP bound), and BranchRulePriority
// is not consulted because only one branch rule can be registered.
type Params struct {
	DisableHeuristics  bool
	DisablePresolve    bool
	DisablePropagation bool
	DisableSeparation  bool
	ObjectiveIntegral  bool
	BranchRulePriority int
	TimeLimit          time.Duration
	NodeLimit          int
}

// DefaultParams returns the framework setup the orchestrator applies before
// optimisation: every disableable stage off, objective marked integral, and
// generous but finite limits.
func DefaultParams() *Params {
	return &Params{
		DisableHeuristics:  true,
		DisablePresolve:    true,
		DisablePropagation: true,
		DisableSeparation:  true,
		ObjectiveIntegral:  true,
		BranchRulePriority: math.MaxInt32,
		TimeLimit:          5 * time.Minute,
		NodeLimit:          0,
	}
}

// WithTimeLimit sets the wall-clock budget and returns Params for chaining.
func (p *Params) WithTimeLimit(d time.Duration) *Params {
	p.TimeLimit = d
	return p
}

// WithNodeLimit sets the explored-node budget (0 means unlimited) and
// returns Params for chaining.
func (p *Params) WithNodeLimit(n int) *Params {
	p.NodeLimit = n
	return p
}

// Result is the outcome of a Solve call.
type Result struct {
	Status        Status
	ObjVal        float64
	ColumnValues  []branch.ColumnValue
	NodesExplored int
	Duration      time.Duration
}

// Tree is the branch-and-bound driver. It owns the shared RMP (columns
// persist across nodes; only their upper bounds are fixed per node) and the
// registered callbacks.
type Tree struct {
	graph        *vrp.Graph
	rmp          *rmp.RMP
	params       *Params
	pricer       Pricer
	branchRule   BranchRule
	eventHandler EventHandler
	nextNodeID   int
}

// NewTree creates a branch-and-bound driver over the given graph and RMP.
func NewTree(g *vrp.Graph, r *rmp.RMP, params *Params) *Tree {
	if params == nil {
		params = DefaultParams()
	}
	return &Tree{graph: g, rmp: r, params: params}
}

// RegisterPricer attaches the column-generation callback.
func (t *Tree) RegisterPricer(p Pricer) { t.pricer = p }

// RegisterBranchRule attaches the branching callback.
func (t *Tree) RegisterBranchRule(b BranchRule) { t.branchRule = b }

// RegisterEventHandler attaches the node-focused callback.
func (t *Tree) RegisterEventHandler(h EventHandler) { t.eventHandler = h }

// Solve runs best-first branch-and-price to completion, a time limit, or a
// node limit, whichever comes first.
func (t *Tree) Solve(ctx context.Context) (*Result, error) {
	if t.pricer == nil {
		return nil, ErrNoPricerRegistered
	}
	if t.branchRule == nil {
		return nil, ErrNoBranchRuleRegistered
	}
	if t.eventHandler == nil {
		return nil, ErrNoEventHandlerAttached
	}

	start := time.Now()
	q := newNodeQueue()
	q.push(&Node{ID: t.nextNodeID, Parent: -1, Forbidden: branch.ForbiddenSet{}, LowerBound: domain.NegativeInfinity})
	t.nextNodeID++

	best := Result{Status: StatusInfeasible, ObjVal: math.Inf(1)}
	explored := 0

	for q.Len() > 0 {
		if t.params.TimeLimit > 0 && time.Since(start) > t.params.TimeLimit {
			best.Status = StatusTimeLimit
			break
		}
		if t.params.NodeLimit > 0 && explored >= t.params.NodeLimit {
			best.Status = StatusNodeLimit
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		node := q.pop()
		explored++
		metrics.Get().RecordBnBNode()

		if node.LowerBound >= best.ObjVal && best.Status == StatusOptimal {
			continue // bound-dominated: no descendant can beat the incumbent
		}

		if err := t.eventHandler.EventExec(ctx, NodeFocused, node, t.rmp); err != nil {
			return nil, err
		}

		sol, columnValues, lowerBound, err := t.solveNodeLP(ctx, node)
		if err != nil {
			// Either the node's LP is genuinely infeasible or dual recovery
			// failed on a degenerate basis (see rmp.recoverDuals); both are
			// treated as a prune since no valid branching can proceed either
			// way, but only the former is a sound proof of infeasibility.
			logger.Log.Debug("branch-and-price node LP unsolvable, pruning", "node", node.ID, "error", err)
			continue
		}

		fractional := branch.FractionalEdges(columnValues)
		if len(fractional) == 0 {
			if sol.ObjVal < best.ObjVal {
				best = Result{Status: StatusOptimal, ObjVal: sol.ObjVal, ColumnValues: columnValues}
			}
			continue
		}

		edge, err := t.branchRule.BranchExecLP(ctx, columnValues)
		if err != nil {
			continue
		}
		left, right := branch.Children(node.Forbidden, t.graph, edge)
		q.push(&Node{ID: t.nextNodeID, Parent: node.ID, Depth: node.Depth + 1, Forbidden: left, LowerBound: lowerBound})
		t.nextNodeID++
		q.push(&Node{ID: t.nextNodeID, Parent: node.ID, Depth: node.Depth + 1, Forbidden: right, LowerBound: lowerBound})
		t.nextNodeID++
	}

	best.NodesExplored = explored
	best.Duration = time.Since(start)
	return &best, nil
}

// solveNodeLP repeatedly re-optimises the RMP and invokes the pricer until
// no negative-reduced-cost column is found, returning the node's final LP
// solution, its column values in a form the branching rule can consume, and
// a valid lower bound for descendants of this node.
//
// The bound defaults to the final LP objective. If the last pricer call
// escalated to elementary mode and reported a dual-valid reduced-cost bound
// without that column actually entering the RMP (it was already known to the
// added-path registry), the LP objective alone overstates the node's true
// optimum, so the pricer's bound is folded in instead.
func (t *Tree) solveNodeLP(ctx context.Context, node *Node) (*rmp.Solution, []branch.ColumnValue, float64, error) {
	var sol *rmp.Solution
	var lastBound *float64
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, 0, err
		}
		var err error
		sol, err = t.rmp.Solve()
		if err != nil {
			return nil, nil, 0, err
		}

		result, err := t.pricer.OnPrice(ctx, node.Forbidden, sol.Duals)
		if err != nil {
			return nil, nil, 0, err
		}
		lastBound = result.LowerBound
		if len(result.NewColumns) == 0 {
			break
		}
		for _, col := range result.NewColumns {
			if err := t.rmp.AddColumn(col); err != nil {
				return nil, nil, 0, err
			}
		}
	}

	columnValues := make([]branch.ColumnValue, 0, len(t.rmp.Columns()))
	for _, col := range t.rmp.Columns() {
		value := sol.Values[col.Name]
		if domain.IsPositive(value) {
			columnValues = append(columnValues, branch.ColumnValue{Path: col.Path, Value: value})
		}
	}

	lowerBound := sol.ObjVal
	if lastBound != nil {
		lowerBound += *lastBound
	}
	return sol, columnValues, lowerBound, nil
}

// nodeQueue is a best-first (ascending LowerBound) priority queue, the same
// lazy-ordering container/heap shape the labeling pricer uses for its label
// queue.
type nodeQueue struct {
	items []*Node
}

func newNodeQueue() *nodeQueue { return &nodeQueue{} }

func (q *nodeQueue) Len() int { return len(q.items) }
func (q *nodeQueue) Less(i, j int) bool {
	return q.items[i].LowerBound < q.items[j].LowerBound
}
func (q *nodeQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *nodeQueue) Push(x any)    { q.items = append(q.items, x.(*Node)) }
func (q *nodeQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

func (q *nodeQueue) push(n *Node) { heap.Push(q, n) }
func (q *nodeQueue) pop() *Node   { return heap.Pop(q).(*Node) }
