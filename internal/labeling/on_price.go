package labeling

import (
	"github.com/mmghannam/scip-routing/internal/vrp"
	"github.com/mmghannam/scip-routing/pkg/logger"
)

// Registry is the added-path registry: a set keyed by the canonical tuple
// form of the node sequence. It is the only state a Pricer keeps between
// on_price calls besides its immutable configuration, and it only grows.
// internal/cache provides in-memory and Redis-backed implementations.
type Registry interface {
	Contains(name string) bool
	Add(name string)
}

// memoryRegistry is the zero-dependency default used when no Registry is
// supplied.
type memoryRegistry struct {
	seen map[string]bool
}

func newMemoryRegistry() *memoryRegistry {
	return &memoryRegistry{seen: make(map[string]bool)}
}

func (r *memoryRegistry) Contains(name string) bool { return r.seen[name] }
func (r *memoryRegistry) Add(name string)           { r.seen[name] = true }

// Pricer drives the two-phase escalation: on_price always starts in
// non-elementary mode and only escalates to elementary within the same call
// if the non-elementary pass yields nothing. It never persists the
// elementary/non-elementary mode across calls.
type Pricer struct {
	graph    *vrp.Graph
	registry Registry
}

// NewPricer builds a pricer over graph. A nil registry falls back to an
// in-memory set.
func NewPricer(graph *vrp.Graph, registry Registry) *Pricer {
	if registry == nil {
		registry = newMemoryRegistry()
	}
	return &Pricer{graph: graph, registry: registry}
}

// Result is the outcome of one on_price invocation.
type Result struct {
	NewColumns []PricedPath
	// LowerBound is non-nil only when the elementary pass ran and its
	// minimum reduced cost is a dual-valid bound contribution.
	LowerBound *float64
	Elementary bool // whether escalation to elementary mode occurred
}

// OnPrice runs find_paths in non-elementary mode, escalating to elementary
// mode within this same call if no new negative-reduced-cost column
// survives the added-path registry filter. Every surviving path is recorded
// in the registry before being returned.
func (p *Pricer) OnPrice(duals map[int]float64, forbidden map[Edge]bool) Result {
	columns, _ := p.priceOnce(duals, forbidden, false)
	if len(columns) > 0 {
		return Result{NewColumns: columns}
	}

	logger.Log.Debug("pricer escalating to elementary mode", "reason", "non-elementary pass yielded no new column")

	elemColumns, minReducedCost := p.priceOnce(duals, forbidden, true)
	result := Result{NewColumns: elemColumns, Elementary: true}
	if minReducedCost < 0 {
		lb := minReducedCost
		result.LowerBound = &lb
	}
	return result
}

// priceOnce runs a single find_paths pass and filters out paths already in
// the registry, recording the survivors.
func (p *Pricer) priceOnce(duals map[int]float64, forbidden map[Edge]bool, elementary bool) ([]PricedPath, float64) {
	paths, minReducedCost := FindPaths(p.graph, duals, forbidden, elementary)

	var fresh []PricedPath
	for _, path := range paths {
		name := vrp.CanonicalTuple(path.Path)
		if p.registry.Contains(name) {
			continue
		}
		p.registry.Add(name)
		fresh = append(fresh, path)
	}
	return fresh, minReducedCost
}
