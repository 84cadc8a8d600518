// Package vrp holds the immutable instance and graph model that every other
// package in this module treats as read-only input: customers, demands, time
// windows, service times, vehicle capacity and the distance matrix, plus the
// directed graph derived from them.
package vrp

import (
	"fmt"
	"math"

	"github.com/mmghannam/scip-routing/pkg/apperror"
)

// Coordinate is a 2D point carried through for reporting only; the pricer
// never consults it, distances are the sole authority for travel cost.
type Coordinate struct {
	X, Y float64
}

// Instance is the immutable description of a VRPTW problem. Depot is the
// start-depot index (conventionally 0) and EndDepot is a synthetic copy of
// the depot appended at index n+1 so that every route is a simple path from
// the start depot to the end depot.
type Instance struct {
	Name      string
	Depot     int
	Customers []int
	EndDepot  int
	Capacity  int

	Demands      []int
	ServiceTimes []float64
	Earliest     []float64
	Latest       []float64
	Distances    [][]float64
	Coordinates  []Coordinate
}

// NumNodes returns the number of nodes including the start and end depot.
func (in *Instance) NumNodes() int {
	return len(in.Demands)
}

// Dist returns the travel distance (and travel time) between i and j.
func (in *Instance) Dist(i, j int) float64 {
	return in.Distances[i][j]
}

// NewInstance builds and validates an Instance from raw per-customer fields.
// depot is index 0; customers are 1..n; the end depot is appended at n+1 as a
// mirror of the depot's window, demand (0) and service time, matching the
// construction in the original scip_routing pricer's instance_graph helper.
func NewInstance(name string, capacity int, demands []int, earliest, latest, serviceTimes []float64, distances [][]float64, coords []Coordinate) (*Instance, error) {
	n := len(demands) - 1 // demands includes the depot at index 0
	if n < 1 {
		return nil, apperror.New(apperror.CodeInvalidGraph, "instance must have at least one customer")
	}
	if len(earliest) != n+1 || len(latest) != n+1 || len(serviceTimes) != n+1 {
		return nil, apperror.New(apperror.CodeInvalidGraph, "per-node arrays must all have length n+1")
	}
	if len(distances) != n+1 {
		return nil, apperror.New(apperror.CodeInvalidGraph, "distance matrix must be (n+1)x(n+1)")
	}
	for i, row := range distances {
		if len(row) != n+1 {
			return nil, apperror.NewWithField(apperror.CodeInvalidGraph, "distance matrix must be square", fmt.Sprintf("distances[%d]", i))
		}
	}

	endDepot := n + 1
	numNodes := n + 2

	in := &Instance{
		Name:         name,
		Depot:        0,
		EndDepot:     endDepot,
		Capacity:     capacity,
		Demands:      make([]int, numNodes),
		ServiceTimes: make([]float64, numNodes),
		Earliest:     make([]float64, numNodes),
		Latest:       make([]float64, numNodes),
		Distances:    make([][]float64, numNodes),
	}

	in.Customers = make([]int, n)
	for c := 1; c <= n; c++ {
		in.Customers[c-1] = c
	}

	copy(in.Demands, demands)
	copy(in.Earliest, earliest)
	copy(in.Latest, latest)
	copy(in.ServiceTimes, serviceTimes)

	// Mirror the depot onto the end depot: identical window and service
	// time, zero demand.
	in.Demands[endDepot] = 0
	in.Earliest[endDepot] = earliest[0]
	in.Latest[endDepot] = latest[0]
	in.ServiceTimes[endDepot] = serviceTimes[0]

	for i := 0; i <= n; i++ {
		row := make([]float64, numNodes)
		copy(row, distances[i])
		row[endDepot] = distances[i][0]
		in.Distances[i] = row
	}
	endRow := make([]float64, numNodes)
	copy(endRow, distances[0])
	endRow[endDepot] = 0
	in.Distances[endDepot] = endRow

	if coords != nil {
		in.Coordinates = make([]Coordinate, numNodes)
		copy(in.Coordinates, coords)
		if len(coords) > 0 {
			in.Coordinates[endDepot] = coords[0]
		}
	}

	if err := in.validate(); err != nil {
		return nil, err
	}
	return in, nil
}

func (in *Instance) validate() error {
	verrs := apperror.NewValidationErrors()

	if in.Capacity < 0 {
		verrs.AddErrorWithField(apperror.CodeInvalidCapacity, "capacity must be non-negative", "capacity")
	}
	for _, c := range in.Customers {
		if in.Demands[c] < 0 {
			verrs.AddErrorWithField(apperror.CodeInvalidCapacity, fmt.Sprintf("customer %d has negative demand", c), "demands")
		}
		if in.Demands[c] > in.Capacity {
			verrs.AddErrorWithField(apperror.CodeInvalidCapacity, fmt.Sprintf("customer %d demand exceeds vehicle capacity", c), "demands")
		}
		if in.Earliest[c] > in.Latest[c] {
			verrs.AddErrorWithField(apperror.CodeInvalidGraph, fmt.Sprintf("customer %d has earliest > latest", c), "windows")
		}
		if math.IsInf(in.Latest[c], 1) && math.IsInf(in.Earliest[c], 1) {
			verrs.AddErrorWithField(apperror.CodeInvalidGraph, fmt.Sprintf("customer %d window is unbounded on both ends", c), "windows")
		}
	}
	for i := range in.Distances {
		for j := range in.Distances[i] {
			if in.Distances[i][j] < 0 {
				verrs.AddError(apperror.CodeNegativeCost, "distances must be non-negative")
			}
		}
	}

	if !verrs.IsValid() {
		return apperror.Wrap(fmt.Errorf("%v", verrs.ErrorMessages()), apperror.CodeInvalidGraph, "instance validation failed")
	}
	return nil
}
