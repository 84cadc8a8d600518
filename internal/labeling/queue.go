package labeling

import "container/heap"

// queueItem is one entry in the label priority queue: a handle into the
// arena plus the ordering keys snapshotted at insertion time, so the heap
// never has to dereference the arena to compare items.
type queueItem struct {
	handle       int32
	earliestTime float64
	cost         float64
	index        int // position in the heap slice, maintained by heap.Interface
}

// labelQueue orders labels by (earliest_time, cost) — the min-earliest-time
// expansion order the label-setting search requires, ties broken by cost.
// Dominated labels are not removed from the heap directly (the arena has no
// stable handle into a binary heap); instead the owning label is marked
// Removed in the arena and skipped lazily when popped, the same shape as the
// teacher's Dijkstra priority queue.
type labelQueue struct {
	items []*queueItem
}

func newLabelQueue() *labelQueue {
	q := &labelQueue{}
	heap.Init(q)
	return q
}

func (q *labelQueue) Len() int { return len(q.items) }

func (q *labelQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.earliestTime != b.earliestTime {
		return a.earliestTime < b.earliestTime
	}
	return a.cost < b.cost
}

func (q *labelQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *labelQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(q.items)
	q.items = append(q.items, item)
}

func (q *labelQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return item
}

// push inserts a label handle into the queue.
func (q *labelQueue) push(handle int32, earliestTime, cost float64) {
	heap.Push(q, &queueItem{handle: handle, earliestTime: earliestTime, cost: cost})
}

// pop removes and returns the minimum-priority handle, or (-1, false) if the
// queue is empty.
func (q *labelQueue) pop() (int32, bool) {
	if q.Len() == 0 {
		return -1, false
	}
	item := heap.Pop(q).(*queueItem)
	return item.handle, true
}
