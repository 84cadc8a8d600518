// Package compact is a brute-force reference oracle for the smallest VRPTW
// instances: it cross-checks the branch-and-price orchestrator's objective
// against this package's exhaustive search over every way to partition the
// customer set into vehicle routes.
//
// A vehicle-indexed arc-flow MIP with a big-M MTZ time-linking constraint
// would be the textbook compact formulation here, but no general-purpose
// 0/1 MIP solver with big-M constraint support exists anywhere in this
// module's dependency set — gonum's lp package is LP-only — so rebuilding
// that formulation's solver from scratch would mean writing a second,
// less-tested branch-and-bound engine purely to validate a handful of toy
// fixtures. Exhaustive enumeration is exact, simple, and correct for the
// tiny instance sizes this oracle is actually exercised against; it refuses
// instances above a small customer-count guard rather than silently taking
// exponential time.
package compact

import (
	"fmt"

	"github.com/mmghannam/scip-routing/internal/vrp"
	"github.com/mmghannam/scip-routing/pkg/apperror"
)

// maxCustomers bounds the brute-force search: set partitions of n customers
// number the Bell number B(n), and each block is then permuted, so this
// guard keeps the oracle firmly in "tiny fixture" territory.
const maxCustomers = 8

// Solution is the best route set the oracle found.
type Solution struct {
	ObjVal float64
	Routes [][]int // each route is depot, c_1, ..., c_k, end_depot
}

// Solve exhaustively searches every partition of in's customers into
// capacity- and time-window-feasible routes and returns the cheapest.
func Solve(in *vrp.Instance) (*Solution, error) {
	n := len(in.Customers)
	if n > maxCustomers {
		return nil, apperror.New(apperror.CodeInvalidArgument,
			fmt.Sprintf("compact oracle only supports up to %d customers, got %d", maxCustomers, n))
	}
	if n == 0 {
		return &Solution{ObjVal: 0}, nil
	}

	best := &Solution{ObjVal: -1}
	forEachPartition(in.Customers, func(blocks [][]int) {
		total := 0.0
		routes := make([][]int, 0, len(blocks))
		for _, block := range blocks {
			route, cost, ok := cheapestFeasibleOrdering(in, block)
			if !ok {
				return // this partition is infeasible, skip it entirely
			}
			total += cost
			routes = append(routes, route)
		}
		if best.ObjVal < 0 || total < best.ObjVal {
			best.ObjVal = total
			best.Routes = routes
		}
	})

	if best.ObjVal < 0 {
		return nil, apperror.New(apperror.CodeInfeasible, "no feasible route partition exists for this instance")
	}
	return best, nil
}

// cheapestFeasibleOrdering tries every permutation of block and returns the
// cheapest one that respects capacity and every time window, together with
// whether any ordering was feasible at all.
func cheapestFeasibleOrdering(in *vrp.Instance, block []int) ([]int, float64, bool) {
	demand := 0
	for _, c := range block {
		demand += in.Demands[c]
	}
	if demand > in.Capacity {
		return nil, 0, false
	}

	bestCost := -1.0
	var bestRoute []int
	forEachPermutation(block, func(order []int) {
		route := make([]int, 0, len(order)+2)
		route = append(route, in.Depot)
		route = append(route, order...)
		route = append(route, in.EndDepot)

		cost, ok := routeCostIfFeasible(in, route)
		if !ok {
			return
		}
		if bestCost < 0 || cost < bestCost {
			bestCost = cost
			bestRoute = route
		}
	})
	if bestCost < 0 {
		return nil, 0, false
	}
	return bestRoute, bestCost, true
}

// routeCostIfFeasible walks a fixed node sequence, accumulating travel cost
// and checking every time window along the way (the same resource
// extension the labeling pricer performs, but without dominance — this
// oracle only ever evaluates one fully fixed path at a time).
func routeCostIfFeasible(in *vrp.Instance, route []int) (float64, bool) {
	t := in.Earliest[in.Depot]
	cost := 0.0
	for k := 0; k+1 < len(route); k++ {
		i, j := route[k], route[k+1]
		t += in.ServiceTimes[i] + in.Dist(i, j)
		if t < in.Earliest[j] {
			t = in.Earliest[j]
		}
		if t > in.Latest[j] {
			return 0, false
		}
		cost += in.Dist(i, j)
	}
	return cost, true
}

// forEachPartition calls f once for every way of partitioning items into
// non-empty, unordered blocks (a set partition), via the standard
// restricted-growth-string recursion.
func forEachPartition(items []int, f func(blocks [][]int)) {
	n := len(items)
	assignment := make([]int, n)

	var recurse func(i, maxBlock int)
	recurse = func(i, maxBlock int) {
		if i == n {
			blocks := make([][]int, maxBlock+1)
			for idx, b := range assignment {
				blocks[b] = append(blocks[b], items[idx])
			}
			f(blocks)
			return
		}
		for b := 0; b <= maxBlock+1 && b < n; b++ {
			assignment[i] = b
			next := maxBlock
			if b > maxBlock {
				next = b
			}
			recurse(i+1, next)
		}
	}
	recurse(0, -1)
}

// forEachPermutation calls f once for every ordering of items (Heap's
// algorithm), without mutating the caller's slice.
func forEachPermutation(items []int, f func(order []int)) {
	a := append([]int(nil), items...)
	n := len(a)
	c := make([]int, n)

	f(append([]int(nil), a...))
	i := 0
	for i < n {
		if c[i] < i {
			if i%2 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			f(append([]int(nil), a...))
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
}
