// SPDX-License-Identifier: MIT

package pareto

import (
	"iter"
	"math"
	"sort"
)

// archiveEntry wraps a caller's value with the entry's global insertion
// sequence number, used only internally to break crowding-distance ties
// during capacity pruning (spec: "ties broken by insertion order").
type archiveEntry[V any] struct {
	value V
	order uint64
}

// Archive is a capacity-bounded ordered sequence of nested Fronts
// [F0, F1, ...] sharing one direction vector. F0 is the non-dominated
// front; Fi+1 holds keys dominated by Fi but not by F0..Fi-1.
type Archive[K Number, V any] struct {
	fronts          []*Front[K, archiveEntry[V]]
	variant         VariantTag
	directions      Directions
	minimizeDefault bool
	capacity        int
	seq             uint64
}

// NewArchive returns an empty Archive backed by the given index variant,
// with every dimension maximized by default and the given capacity.
func NewArchive[K Number, V any](variant VariantTag, capacity int) *Archive[K, V] {
	return &Archive[K, V]{variant: variant, capacity: capacity}
}

// NewArchiveMinimize is NewArchive with a shared per-dimension sense.
func NewArchiveMinimize[K Number, V any](variant VariantTag, minimize bool, capacity int) *Archive[K, V] {
	a := NewArchive[K, V](variant, capacity)
	a.minimizeDefault = minimize
	return a
}

// NewArchiveDirections is NewArchive with an explicit direction vector.
func NewArchiveDirections[K Number, V any](variant VariantTag, d Directions, capacity int) *Archive[K, V] {
	a := NewArchive[K, V](variant, capacity)
	a.directions = append(Directions(nil), d...)
	return a
}

// NewArchiveFromSeq builds an Archive from an existing (key, value)
// sequence, inserting each pair in iteration order.
func NewArchiveFromSeq[K Number, V any](variant VariantTag, d Directions, capacity int, seq iter.Seq2[Point[K], V]) (*Archive[K, V], error) {
	a := NewArchiveDirections[K, V](variant, d, capacity)
	for k, v := range seq {
		if err := a.Insert(k, v); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Archive[K, V]) newFront() *Front[K, archiveEntry[V]] {
	if len(a.directions) > 0 {
		return NewFrontDirections[K, archiveEntry[V]](a.variant, a.directions)
	}
	return NewFrontMinimize[K, archiveEntry[V]](a.variant, a.minimizeDefault)
}

// Capacity returns the archive's maximum total entry count.
func (a *Archive[K, V]) Capacity() int { return a.capacity }

// Size returns the total number of entries held across every front.
func (a *Archive[K, V]) Size() int {
	n := 0
	for _, f := range a.fronts {
		n += f.Size()
	}
	return n
}

func (a *Archive[K, V]) Empty() bool { return a.Size() == 0 }

func (a *Archive[K, V]) Dimensions() int {
	for _, f := range a.fronts {
		if d := f.Dimensions(); d != 0 {
			return d
		}
	}
	return 0
}

// Clear removes every front and entry.
func (a *Archive[K, V]) Clear() {
	a.fronts = nil
	a.directions = nil
}

// Insert attempts F0, cascading into deeper fronts as needed, then prunes
// the lowest-crowding entry of the deepest front if capacity is exceeded.
func (a *Archive[K, V]) Insert(key Point[K], value V) error {
	if a.capacity <= 0 {
		return wrapError("Archive.Insert", CapacityInvariant, nil)
	}
	a.seq++
	if err := a.cascadeInsert(0, key, archiveEntry[V]{value: value, order: a.seq}); err != nil {
		return err
	}
	a.enforceCapacity()
	return nil
}

type pendingEntry[K Number, V any] struct {
	level int
	key   Point[K]
	entry archiveEntry[V]
}

// cascadeInsert drives one (key, entry) pair, and every entry it displaces
// in turn, through the front sequence starting at startLevel.
func (a *Archive[K, V]) cascadeInsert(startLevel int, key Point[K], entry archiveEntry[V]) error {
	queue := []pendingEntry[K, V]{{level: startLevel, key: key, entry: entry}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		level := cur.level
		for {
			if level >= len(a.fronts) {
				a.fronts = append(a.fronts, a.newFront())
			}
			accepted, displaced, err := a.fronts[level].insertCascade(cur.key, cur.entry)
			if err != nil {
				return err
			}
			if accepted {
				for _, d := range displaced {
					queue = append(queue, pendingEntry[K, V]{level: level + 1, key: d.Key, entry: d.Value})
				}
				break
			}
			level++
		}
	}
	return nil
}

// enforceCapacity removes, while the archive is over capacity, the entry
// with the smallest crowding distance from the deepest non-empty front
// (ties broken by earliest insertion order).
func (a *Archive[K, V]) enforceCapacity() {
	for a.Size() > a.capacity {
		idx := -1
		for i := len(a.fronts) - 1; i >= 0; i-- {
			if a.fronts[i].Size() > 0 {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}
		front := a.fronts[idx]

		var worstKey Point[K]
		var worstEntry archiveEntry[V]
		worstCD := math.Inf(1)
		first := true
		for k, v := range front.All() {
			cd := front.CrowdingDistance(k)
			if first || cd < worstCD || (cd == worstCD && v.order < worstEntry.order) {
				worstKey, worstEntry, worstCD = k, v, cd
				first = false
			}
		}
		front.Erase(worstKey)
	}
}

// Erase removes the entry equal to key from whatever front holds it, then
// rebuilds every deeper front by reinserting its entries (in original
// insertion order) starting from the erased front's level, promoting any
// that are no longer dominated.
func (a *Archive[K, V]) Erase(key Point[K]) int {
	idx := -1
	for i, f := range a.fronts {
		if _, ok := f.Find(key); ok {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0
	}
	a.fronts[idx].Erase(key)

	type displacedPair struct {
		key   Point[K]
		entry archiveEntry[V]
	}
	var rest []displacedPair
	for j := idx + 1; j < len(a.fronts); j++ {
		for k, v := range a.fronts[j].All() {
			rest = append(rest, displacedPair{key: k, entry: v})
		}
		a.fronts[j] = a.newFront()
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].entry.order < rest[j].entry.order })

	for _, r := range rest {
		_ = a.cascadeInsert(idx, r.key, r.entry)
	}
	return 1
}

// Find returns the stored value for key, if present in any front.
func (a *Archive[K, V]) Find(key Point[K]) (V, bool) {
	for _, f := range a.fronts {
		if e, ok := f.Find(key); ok {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// FindFront returns the index of the front that would accept key: the
// smallest i such that no key in Fi dominates key. A key rejected by every
// existing front would still be accepted by a new front one level deeper,
// so FindFront only reports ok=false when the archive holds no fronts at
// all yet.
func (a *Archive[K, V]) FindFront(key Point[K]) (int, bool) {
	for i, f := range a.fronts {
		dominated := false
		for p := range f.index.All() {
			if p.Dominates(key, f.directions) {
				dominated = true
				break
			}
		}
		if !dominated {
			return i, true
		}
	}
	return len(a.fronts), len(a.fronts) > 0
}

// Fronts yields a snapshot Front for each nested level in order. Each
// snapshot is independent of the archive: mutating it does not affect the
// archive, and vice versa.
func (a *Archive[K, V]) Fronts() iter.Seq[*Front[K, V]] {
	return func(yield func(*Front[K, V]) bool) {
		for _, f := range a.fronts {
			pub := NewFrontDirections[K, V](a.variant, f.Directions())
			for k, v := range f.All() {
				pub.index.Insert(k, v.value)
			}
			if !yield(pub) {
				return
			}
		}
	}
}

// Front0 returns a snapshot of the non-dominated front F0, or an empty
// Front if the archive holds no entries yet.
func (a *Archive[K, V]) Front0() *Front[K, V] {
	for f := range a.Fronts() {
		return f
	}
	if len(a.directions) > 0 {
		return NewFrontDirections[K, V](a.variant, a.directions)
	}
	return NewFrontMinimize[K, V](a.variant, a.minimizeDefault)
}

// All iterates every (key, value) pair across every front, in front order.
func (a *Archive[K, V]) All() iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		for _, f := range a.fronts {
			for k, v := range f.All() {
				if !yield(k, v.value) {
					return
				}
			}
		}
	}
}
