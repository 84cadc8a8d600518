package vrp

import (
	"encoding/json"
	"fmt"
	"io"
)

// instanceDoc is the on-disk JSON shape for an Instance: depot-first arrays
// (index 0 is the depot), matching NewInstance's own convention so loading
// is a direct unmarshal-then-construct.
type instanceDoc struct {
	Name         string      `json:"name"`
	Capacity     int         `json:"capacity"`
	Demands      []int       `json:"demands"`
	Earliest     []float64   `json:"earliest"`
	Latest       []float64   `json:"latest"`
	ServiceTimes []float64   `json:"service_times"`
	Distances    [][]float64 `json:"distances"`
	Coordinates  []struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"coordinates"`
}

// LoadInstance decodes a JSON-encoded VRPTW instance from r.
func LoadInstance(r io.Reader) (*Instance, error) {
	var doc instanceDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode instance: %w", err)
	}

	var coords []Coordinate
	if len(doc.Coordinates) > 0 {
		coords = make([]Coordinate, len(doc.Coordinates))
		for i, c := range doc.Coordinates {
			coords[i] = Coordinate{X: c.X, Y: c.Y}
		}
	}

	return NewInstance(doc.Name, doc.Capacity, doc.Demands, doc.Earliest, doc.Latest, doc.ServiceTimes, doc.Distances, coords)
}
