// Package branch implements the edge-branching rule and the branch-node
// event handler that enforces it, plus the path/edge codec shared by both:
// route variables are named by the canonical tuple form of their node
// sequence and decoded back into an edge set to test against a node's
// forbidden-edge set.
package branch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmghannam/scip-routing/pkg/apperror"
)

// DecodePath parses a route variable's persisted name, e.g. "(0, 3, 7, 11)",
// back into its node sequence. The prefix "t_" (and its bare "t" variant)
// appears on transformed copies of the variable and is stripped before
// parsing, per the persisted naming convention.
func DecodePath(name string) ([]int, error) {
	trimmed := strings.TrimPrefix(name, "t_")
	trimmed = strings.TrimPrefix(trimmed, "t")

	trimmed = strings.TrimSpace(trimmed)
	if !strings.HasPrefix(trimmed, "(") || !strings.HasSuffix(trimmed, ")") {
		return nil, apperror.NewWithField(apperror.CodeInvalidAlgorithm, fmt.Sprintf("malformed variable name %q", name), "name")
	}
	inner := trimmed[1 : len(trimmed)-1]
	if strings.TrimSpace(inner) == "" {
		return nil, apperror.NewWithField(apperror.CodeInvalidAlgorithm, fmt.Sprintf("malformed variable name %q", name), "name")
	}

	parts := strings.Split(inner, ",")
	path := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInvalidAlgorithm, fmt.Sprintf("malformed node in variable name %q", name))
		}
		path[i] = n
	}
	return path, nil
}

// CyclicEdges returns the consecutive arcs of path plus the wrap-around arc
// from the last node back to the first, the edge set the event handler
// tests against a node's forbidden-edge set.
func CyclicEdges(path []int) [][2]int {
	if len(path) == 0 {
		return nil
	}
	edges := make([][2]int, 0, len(path))
	for k := 0; k+1 < len(path); k++ {
		edges = append(edges, [2]int{path[k], path[k+1]})
	}
	edges = append(edges, [2]int{path[len(path)-1], path[0]})
	return edges
}
