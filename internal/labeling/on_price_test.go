package labeling

import (
	"testing"

	"github.com/mmghannam/scip-routing/internal/vrp"
)

func TestOnPrice_RepeatedCallWithSameDualsYieldsNoFurtherColumns(t *testing.T) {
	_, g := buildTestGraph(t)
	p := NewPricer(g, nil)
	duals := map[int]float64{1: 11, 2: 0, 3: 0}

	first := p.OnPrice(duals, nil)
	if len(first.NewColumns) == 0 {
		t.Fatal("expected at least one column on the first call")
	}

	second := p.OnPrice(duals, nil)
	if len(second.NewColumns) != 0 {
		t.Errorf("expected no further columns on repeated identical call, got %v", second.NewColumns)
	}
}

func TestOnPrice_RegistryDeduplicatesAcrossElementaryEscalation(t *testing.T) {
	_, g := buildTestGraph(t)
	p := NewPricer(g, nil)
	duals := map[int]float64{1: 100, 2: 100, 3: 100}

	result := p.OnPrice(duals, nil)
	seen := make(map[string]bool)
	for _, c := range result.NewColumns {
		name := vrp.CanonicalTuple(c.Path)
		if seen[name] {
			t.Errorf("duplicate column %s returned from a single on_price call", name)
		}
		seen[name] = true
	}
}

func TestMemoryRegistry_ContainsAfterAdd(t *testing.T) {
	r := newMemoryRegistry()
	if r.Contains("(0, 1, 2)") {
		t.Fatal("fresh registry should not contain anything")
	}
	r.Add("(0, 1, 2)")
	if !r.Contains("(0, 1, 2)") {
		t.Fatal("registry should contain a path after Add")
	}
}
