package labeling

import (
	"math"

	"github.com/mmghannam/scip-routing/internal/vrp"
)

// PricedPath is one yielded result of find_paths: a node sequence with its
// per-node service-start times, its travel cost (distances only, no dual
// corrections) and its reduced cost at the duals the search ran with.
type PricedPath struct {
	Path        []int
	StartTimes  []float64
	TravelCost  float64
	ReducedCost float64
}

// Edge is a directed arc (i, j), used as a forbidden-edge set key.
type Edge [2]int

const epsilon = 1e-8

// FindPaths runs the multi-label shortest-path search once, in either
// elementary or non-elementary mode, and returns every discovered
// sink label whose reduced cost is < -epsilon, sorted by canonical node
// tuple for deterministic column addition, plus the single most-negative
// reduced cost found (used for the node lower bound in elementary mode).
//
// duals supplies pi_c for each customer's covering constraint; the depot and
// end depot implicitly have dual 0 (duals need not and should not contain
// entries for them).
func FindPaths(g *vrp.Graph, duals map[int]float64, forbidden map[Edge]bool, elementary bool) (paths []PricedPath, minReducedCost float64) {
	in := g.Instance()
	arena := AcquireArena()
	defer ReleaseArena(arena)

	maxCustomer := 0
	for _, c := range in.Customers {
		if c > maxCustomer {
			maxCustomer = c
		}
	}

	// processed[v] / unprocessed[v] hold arena handles of labels settled at
	// or still competing to be settled at v.
	processed := make(map[int][]int32, in.NumNodes())
	unprocessed := make(map[int][]int32, in.NumNodes())

	queue := newLabelQueue()

	root := Label{
		LastNode:     in.Depot,
		Cost:         0,
		Demand:       0,
		EarliestTime: in.Earliest[in.Depot],
		Parent:       -1,
	}
	if elementary {
		root.Visited = NewBitset(maxCustomer)
		root.Visited.Set(in.Depot)
	}
	rootHandle := arena.New(root)
	unprocessed[in.Depot] = append(unprocessed[in.Depot], rootHandle)
	queue.push(rootHandle, root.EarliestTime, root.Cost)

	minReducedCost = math.Inf(1)

	for {
		handle, ok := queue.pop()
		if !ok {
			break
		}
		L := arena.Get(handle)
		if L.Removed {
			continue
		}

		for _, w := range g.Neighbors(L.LastNode) {
			if elementary && w != in.EndDepot && L.Visited.Has(w) {
				continue
			}
			if forbidden[Edge{L.LastNode, w}] {
				continue
			}

			dist := in.Dist(L.LastNode, w)
			newDemand := L.Demand + in.Demands[w]
			newTime := math.Max(L.EarliestTime+in.ServiceTimes[L.LastNode]+dist, in.Earliest[w])
			newCost := L.Cost + dist - dualOf(duals, L.LastNode)

			if newDemand > in.Capacity || newTime > in.Latest[w] {
				continue
			}

			newLabel := Label{
				LastNode:     w,
				Cost:         newCost,
				Demand:       newDemand,
				EarliestTime: newTime,
				Parent:       handle,
			}
			if elementary && w != in.EndDepot {
				newLabel.Visited = L.Visited.With(w)
			} else if elementary {
				newLabel.Visited = L.Visited
			}

			if w == in.EndDepot {
				// Dominance is intentionally not applied at the end depot:
				// every negative-reduced-cost sink label must survive so
				// every improving column is reported.
				sinkHandle := arena.New(newLabel)
				processed[w] = append(processed[w], sinkHandle)
				redCost := newCost - dualOf(duals, w)
				if redCost < minReducedCost {
					minReducedCost = redCost
				}
				continue
			}

			if dominatedByAny(arena, processed[w], &newLabel, elementary) ||
				dominatedByAny(arena, unprocessed[w], &newLabel, elementary) {
				continue
			}

			// newLabel survives: remove anything it dominates from w's
			// unprocessed set (lazy deletion via the Removed bit).
			survivors := unprocessed[w][:0]
			for _, other := range unprocessed[w] {
				otherLabel := arena.Get(other)
				if !otherLabel.Removed && Dominates(&newLabel, otherLabel, elementary) {
					arena.MarkRemoved(other)
					continue
				}
				survivors = append(survivors, other)
			}
			unprocessed[w] = survivors

			newHandle := arena.New(newLabel)
			unprocessed[w] = append(unprocessed[w], newHandle)
			queue.push(newHandle, newLabel.EarliestTime, newLabel.Cost)
		}

		processed[L.LastNode] = append(processed[L.LastNode], handle)
	}

	for _, sinkHandle := range processed[in.EndDepot] {
		L := arena.Get(sinkHandle)
		redCost := L.Cost - dualOf(duals, in.EndDepot)
		if redCost >= -epsilon {
			continue
		}
		path := arena.Path(sinkHandle)
		paths = append(paths, PricedPath{
			Path:        path,
			StartTimes:  startTimesOf(arena, sinkHandle),
			TravelCost:  travelCost(in, path),
			ReducedCost: redCost,
		})
	}

	sortPaths(paths)
	return paths, minReducedCost
}

func dualOf(duals map[int]float64, node int) float64 {
	return duals[node] // depot/end_depot absent -> zero value, matching pi_depot = pi_end_depot = 0
}

func dominatedByAny(arena *Arena, handles []int32, candidate *Label, elementary bool) bool {
	for _, h := range handles {
		existing := arena.Get(h)
		if existing.Removed {
			continue
		}
		if Dominates(existing, candidate, elementary) {
			return true
		}
	}
	return false
}

func startTimesOf(arena *Arena, sinkHandle int32) []float64 {
	var times []float64
	idx := sinkHandle
	for idx != -1 {
		l := arena.Get(idx)
		times = append(times, l.EarliestTime)
		idx = l.Parent
	}
	for i, j := 0, len(times)-1; i < j; i, j = i+1, j-1 {
		times[i], times[j] = times[j], times[i]
	}
	return times
}

func travelCost(in *vrp.Instance, path []int) float64 {
	var total float64
	for k := 0; k+1 < len(path); k++ {
		total += in.Dist(path[k], path[k+1])
	}
	return total
}
