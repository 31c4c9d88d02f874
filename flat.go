// SPDX-License-Identifier: MIT

package pareto

import (
	"iter"
	"sort"
)

// Flat is the baseline spatial index: an appendable sequence of entries,
// queried by linear scan. Insert is O(1) amortized; every query is an
// O(n) scan, and FindNearest also sorts the entries (O(n log n)).
// It exists for correctness cross-checking and for workloads small enough
// that tree maintenance overhead is not worth paying.
type Flat[K Number, V any] struct {
	entries []Entry[K, V]
	dim     int
}

// NewFlat returns an empty Flat index with a runtime-determined dimension.
func NewFlat[K Number, V any]() *Flat[K, V] {
	return &Flat[K, V]{}
}

func (f *Flat[K, V]) Insert(key Point[K], value V) {
	if err := lockDimension(&f.dim, key, "Flat.Insert"); err != nil {
		panic(err)
	}
	f.entries = append(f.entries, Entry[K, V]{Key: key, Value: value})
}

func (f *Flat[K, V]) Erase(key Point[K]) int {
	n := 0
	out := f.entries[:0]
	for _, e := range f.entries {
		if e.Key.Equal(key) {
			n++
			continue
		}
		out = append(out, e)
	}
	f.entries = out
	return n
}

func (f *Flat[K, V]) Find(key Point[K]) (V, bool) {
	for _, e := range f.entries {
		if e.Key.Equal(key) {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

func (f *Flat[K, V]) All() iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		for _, e := range f.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

func (f *Flat[K, V]) FindIntersection(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	return f.scanBox(NewBox(lo, hi), true)
}

func (f *Flat[K, V]) FindWithin(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	return f.scanBox(NewBox(lo, hi), true)
}

func (f *Flat[K, V]) FindDisjoint(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	return f.scanBox(NewBox(lo, hi), false)
}

func (f *Flat[K, V]) scanBox(box Box[K], want bool) iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		for _, e := range f.entries {
			if box.Contains(e.Key) == want {
				if !yield(e.Key, e.Value) {
					return
				}
			}
		}
	}
}

func (f *Flat[K, V]) FindNearest(ref Point[K], k int) iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		type cand struct {
			idx int
			d   float64
		}
		cands := make([]cand, len(f.entries))
		for i, e := range f.entries {
			cands[i] = cand{idx: i, d: ref.SquaredDistance(e.Key)}
		}
		sort.Slice(cands, func(i, j int) bool { return cands[i].d < cands[j].d })
		limit := len(cands)
		if k > 0 && k < limit {
			limit = k
		}
		for _, c := range cands[:limit] {
			e := f.entries[c.idx]
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

func (f *Flat[K, V]) MaxElement(dim int) (Point[K], V, bool) {
	return f.extremum(dim, func(a, b K) bool { return a > b })
}

func (f *Flat[K, V]) MinElement(dim int) (Point[K], V, bool) {
	return f.extremum(dim, func(a, b K) bool { return a < b })
}

func (f *Flat[K, V]) extremum(dim int, better func(a, b K) bool) (Point[K], V, bool) {
	if len(f.entries) == 0 {
		var zeroK Point[K]
		var zeroV V
		return zeroK, zeroV, false
	}
	best := f.entries[0]
	for _, e := range f.entries[1:] {
		if better(e.Key.At(dim), best.Key.At(dim)) {
			best = e
		}
	}
	return best.Key, best.Value, true
}

func (f *Flat[K, V]) Dimensions() int { return f.dim }
func (f *Flat[K, V]) Size() int       { return len(f.entries) }
func (f *Flat[K, V]) Empty() bool     { return len(f.entries) == 0 }

func (f *Flat[K, V]) Clear() {
	f.entries = nil
	f.dim = 0
}

func (f *Flat[K, V]) BoundingBox() (Box[K], bool) {
	if len(f.entries) == 0 {
		var zero Box[K]
		return zero, false
	}
	box := BoxFromPoint(f.entries[0].Key)
	for _, e := range f.entries[1:] {
		box = box.Stretch(e.Key)
	}
	return box, true
}
