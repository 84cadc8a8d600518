package labeling

import "sync"

// Arena is an append-only store of Labels indexed by integer handle. Labels
// are created at a high rate during find_paths and mostly discarded once
// dominated, so the arena itself — not individual labels — is the unit of
// reuse: one arena is acquired per find_paths call and returned to a pool
// afterwards, the same acquire/release shape as the teacher's GraphPool.
type Arena struct {
	labels []Label
}

var arenaPool = sync.Pool{
	New: func() any {
		return &Arena{labels: make([]Label, 0, 1024)}
	},
}

// AcquireArena obtains an empty Arena from the pool.
func AcquireArena() *Arena {
	a := arenaPool.Get().(*Arena)
	a.labels = a.labels[:0]
	return a
}

// ReleaseArena returns an Arena to the pool. After this call the arena and
// any handles into it must not be used.
func ReleaseArena(a *Arena) {
	if a == nil {
		return
	}
	arenaPool.Put(a)
}

// New appends l to the arena and returns its handle.
func (a *Arena) New(l Label) int32 {
	a.labels = append(a.labels, l)
	return int32(len(a.labels) - 1)
}

// Get returns a pointer to the label at handle idx. The pointer is valid
// only until the next call to New, which may grow the backing slice.
func (a *Arena) Get(idx int32) *Label {
	return &a.labels[idx]
}

// MarkRemoved flips the lazy-deletion bit on the label at idx — the
// dominance-driven "removal" the priority queue checks for on pop.
func (a *Arena) MarkRemoved(idx int32) {
	a.labels[idx].Removed = true
}

// Path walks the parent chain from idx back to the root label, returning the
// node sequence from the start depot to idx's LastNode.
func (a *Arena) Path(idx int32) []int {
	var nodes []int
	for idx != -1 {
		l := a.Get(idx)
		nodes = append(nodes, l.LastNode)
		idx = l.Parent
	}
	// nodes was built backwards (sink to source); reverse in place.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}
