// SPDX-License-Identifier: MIT

package pareto

import "container/heap"

// nearestQueueItem is one entry in the Hjaltason-Samet best-first frontier:
// either an unexpanded subtree (isLeaf false, ordered by its bounding box's
// distance to the query point) or a reportable point (isLeaf true, ordered
// by its exact distance).
type nearestQueueItem struct {
	dist    float64
	isLeaf  bool
	payload any
}

type nearestQueue []nearestQueueItem

func (q nearestQueue) Len() int            { return len(q) }
func (q nearestQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q nearestQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nearestQueue) Push(x any)         { *q = append(*q, x.(nearestQueueItem)) }
func (q *nearestQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// runNearest drives the Hjaltason-Samet best-first nearest-neighbour
// search shared by every tree-shaped index variant: pop the closest queue
// item; if it is a reportable point, yield it; otherwise ask expand to
// push its children/entries back onto the queue keyed by their distance
// to the query point. Iteration stops after k points are yielded (k<=0
// means "no limit, report everything") or yield returns false.
func runNearest(
	seed []nearestQueueItem,
	expand func(payload any, push func(dist float64, isLeaf bool, payload any)),
	k int,
	yield func(payload any) bool,
) {
	pq := nearestQueue(append([]nearestQueueItem(nil), seed...))
	heap.Init(&pq)

	push := func(dist float64, isLeaf bool, payload any) {
		heap.Push(&pq, nearestQueueItem{dist: dist, isLeaf: isLeaf, payload: payload})
	}

	reported := 0
	for pq.Len() > 0 {
		if k > 0 && reported >= k {
			return
		}
		item := heap.Pop(&pq).(nearestQueueItem)
		if item.isLeaf {
			if !yield(item.payload) {
				return
			}
			reported++
			continue
		}
		expand(item.payload, push)
	}
}
