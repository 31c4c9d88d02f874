// SPDX-License-Identifier: MIT

package pareto

import "iter"

// Front wraps a spatial index and maintains the invariant that every two
// stored keys are mutually non-dominated under Directions (an antichain).
// Equal keys are replaced rather than duplicated; duplicate handling is
// the front's responsibility, not the underlying Index's (see spec's
// Open Question on equal-key insertion).
type Front[K Number, V any] struct {
	index           Index[K, V]
	variant         VariantTag
	directions      Directions
	minimizeDefault bool
}

// NewFront returns an empty Front backed by the given index variant, with
// every dimension maximized by default.
func NewFront[K Number, V any](variant VariantTag) *Front[K, V] {
	return &Front[K, V]{index: newIndex[K, V](variant), variant: variant}
}

// NewFrontMinimize returns an empty Front where every dimension shares the
// same optimization sense: minimize if minimize is true, else maximize.
func NewFrontMinimize[K Number, V any](variant VariantTag, minimize bool) *Front[K, V] {
	f := NewFront[K, V](variant)
	f.minimizeDefault = minimize
	return f
}

// NewFrontDirections returns an empty Front with an explicit per-dimension
// direction vector. Directions' length both picks the per-dimension sense
// and, for runtime-dimension containers, constrains the dimension the
// first inserted key must match.
func NewFrontDirections[K Number, V any](variant VariantTag, d Directions) *Front[K, V] {
	f := NewFront[K, V](variant)
	f.directions = append(Directions(nil), d...)
	return f
}

// NewFrontFromSeq builds a Front from an existing (key, value) sequence,
// inserting each pair in iteration order and applying dominance pruning
// as it goes.
func NewFrontFromSeq[K Number, V any](variant VariantTag, d Directions, seq iter.Seq2[Point[K], V]) *Front[K, V] {
	f := NewFrontDirections[K, V](variant, d)
	for k, v := range seq {
		f.Insert(k, v)
	}
	return f
}

// Clone returns a Front with its own independent index holding the same
// entries and the same direction configuration.
func (f *Front[K, V]) Clone() *Front[K, V] {
	g := &Front[K, V]{
		index:           newIndex[K, V](f.variant),
		variant:         f.variant,
		directions:      append(Directions(nil), f.directions...),
		minimizeDefault: f.minimizeDefault,
	}
	for k, v := range f.index.All() {
		g.index.Insert(k, v)
	}
	return g
}

// Directions returns the front's current per-dimension direction vector,
// extended to the locked dimension if any entries have been inserted.
func (f *Front[K, V]) Directions() Directions {
	return append(Directions(nil), f.directions...)
}

func (f *Front[K, V]) ensureDirections(dim int) {
	if len(f.directions) >= dim {
		return
	}
	extended := make(Directions, dim)
	copy(extended, f.directions)
	for i := len(f.directions); i < dim; i++ {
		extended[i] = f.minimizeDefault
	}
	f.directions = extended
}

// Insert attempts to add (key, value). If some stored entry dominates key,
// insertion is rejected: Insert returns that dominator's (key, value) and
// ok=false, leaving the front unchanged. Otherwise every stored entry that
// key dominates is removed, (key, value) is inserted (replacing any entry
// with an equal key), and Insert returns (key, value, true).
func (f *Front[K, V]) Insert(key Point[K], value V) (Point[K], V, bool, error) {
	accepted, _, err := f.insertCascade(key, value)
	if err != nil {
		var zeroK Point[K]
		var zeroV V
		return zeroK, zeroV, false, err
	}
	if !accepted {
		for k, v := range f.index.All() {
			if k.Dominates(key, f.directions) {
				return k, v, false, nil
			}
		}
	}
	return key, value, true, nil
}

// insertCascade performs the dominance-preserving insertion logic and
// additionally reports the entries evicted because key dominates them, so
// a containing Archive can cascade them into its next front.
func (f *Front[K, V]) insertCascade(key Point[K], value V) (accepted bool, displaced []Entry[K, V], err error) {
	if f.index.Dimensions() != 0 && key.Dim() != f.index.Dimensions() {
		return false, nil, wrapError("Front.Insert", DimensionMismatch, errDimFmt(key.Dim(), f.index.Dimensions()))
	}
	if len(f.directions) != 0 && len(f.directions) != key.Dim() {
		return false, nil, wrapError("Front.Insert", DimensionMismatch, errDimFmt(key.Dim(), len(f.directions)))
	}
	f.ensureDirections(key.Dim())

	if _, ok := f.index.Find(key); ok {
		f.index.Erase(key)
	}

	for k := range f.index.All() {
		if k.Dominates(key, f.directions) {
			return false, nil, nil
		}
	}

	var dominatedKeys []Point[K]
	for k, v := range f.index.All() {
		if key.Dominates(k, f.directions) {
			dominatedKeys = append(dominatedKeys, k)
			displaced = append(displaced, Entry[K, V]{Key: k, Value: v})
		}
	}
	for _, k := range dominatedKeys {
		f.index.Erase(k)
	}

	f.index.Insert(key, value)
	return true, displaced, nil
}

// Erase removes the entry equal to key, if any, and returns how many
// entries were removed (0 or 1, since the front enforces unique keys).
// Removed dominators are not reconsidered: erase never pulls other
// previously-dominated points back into the front.
func (f *Front[K, V]) Erase(key Point[K]) int {
	return f.index.Erase(key)
}

// Find returns the stored value for key, if present.
func (f *Front[K, V]) Find(key Point[K]) (V, bool) {
	return f.index.Find(key)
}

// All iterates every stored (key, value) pair.
func (f *Front[K, V]) All() iter.Seq2[Point[K], V] {
	return f.index.All()
}

// FindIntersection, FindWithin, FindDisjoint and FindNearest delegate
// directly to the underlying index.
func (f *Front[K, V]) FindIntersection(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	return f.index.FindIntersection(lo, hi)
}

func (f *Front[K, V]) FindWithin(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	return f.index.FindWithin(lo, hi)
}

func (f *Front[K, V]) FindDisjoint(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	return f.index.FindDisjoint(lo, hi)
}

func (f *Front[K, V]) FindNearest(ref Point[K], k int) iter.Seq2[Point[K], V] {
	return f.index.FindNearest(ref, k)
}

func (f *Front[K, V]) Dimensions() int { return f.index.Dimensions() }
func (f *Front[K, V]) Size() int       { return f.index.Size() }
func (f *Front[K, V]) Empty() bool     { return f.index.Empty() }

func (f *Front[K, V]) Clear() {
	f.index.Clear()
	f.directions = nil
}

func (f *Front[K, V]) BoundingBox() (Box[K], bool) { return f.index.BoundingBox() }

// better reports whether a is strictly better than b on a dimension under
// the front's direction, used by the reference-point queries below.
func (f *Front[K, V]) better(dim int, a, b K) bool {
	minimize := dim < len(f.directions) && f.directions[dim]
	if minimize {
		return a < b
	}
	return a > b
}

// Ideal returns, per dimension, the best observed coordinate value: the
// minimum under minimize, the maximum under maximize.
func (f *Front[K, V]) Ideal() (Point[K], error) {
	return f.referencePoint("Front.Ideal", func(dim int, a, b K) bool { return f.better(dim, a, b) })
}

// Nadir returns, per dimension, the worst coordinate value among this
// front's own keys.
func (f *Front[K, V]) Nadir() (Point[K], error) {
	return f.referencePoint("Front.Nadir", func(dim int, a, b K) bool { return f.better(dim, b, a) })
}

// Worst is an alias of Nadir: for a single front, worst observed equals
// the front's own nadir (the distinction only matters for an Archive,
// which has seen keys beyond its first front).
func (f *Front[K, V]) Worst() (Point[K], error) {
	return f.Nadir()
}

func (f *Front[K, V]) referencePoint(op string, better func(dim int, a, b K) bool) (Point[K], error) {
	if f.Empty() {
		var zero Point[K]
		return zero, wrapError(op, EmptyContainer, nil)
	}
	dim := f.Dimensions()
	out := make([]K, dim)
	first := true
	for k := range f.index.All() {
		if first {
			copy(out, k.Coordinates())
			first = false
			continue
		}
		for i := 0; i < dim; i++ {
			if better(i, k.At(i), out[i]) {
				out[i] = k.At(i)
			}
		}
	}
	return NewPoint(out...), nil
}

// IdealElement, NadirElement and WorstElement return the stored entry
// achieving the corresponding reference value on dimension dim.
func (f *Front[K, V]) IdealElement(dim int) (Point[K], V, bool) {
	return f.extremumElement(dim, func(a, b K) bool { return f.better(dim, a, b) })
}

func (f *Front[K, V]) NadirElement(dim int) (Point[K], V, bool) {
	return f.extremumElement(dim, func(a, b K) bool { return f.better(dim, b, a) })
}

func (f *Front[K, V]) WorstElement(dim int) (Point[K], V, bool) {
	return f.NadirElement(dim)
}

func (f *Front[K, V]) extremumElement(dim int, better func(a, b K) bool) (Point[K], V, bool) {
	var bestK Point[K]
	var bestV V
	found := false
	for k, v := range f.index.All() {
		if !found || better(k.At(dim), bestK.At(dim)) {
			bestK, bestV, found = k, v, true
		}
	}
	return bestK, bestV, found
}

// Dominates reports whether every key of other is dominated by at least
// one key of self: spec-form dominance of self over a reference set.
func (f *Front[K, V]) Dominates(other *Front[K, V]) bool {
	for q := range other.index.All() {
		if !f.dominatesOne(q, Point[K].Dominates) {
			return false
		}
	}
	return true
}

// StronglyDominates is Dominates with strict dominance on every key pair.
func (f *Front[K, V]) StronglyDominates(other *Front[K, V]) bool {
	for q := range other.index.All() {
		if !f.dominatesOne(q, Point[K].StronglyDominates) {
			return false
		}
	}
	return true
}

func (f *Front[K, V]) dominatesOne(q Point[K], dom func(Point[K], Point[K], Directions) bool) bool {
	for p := range f.index.All() {
		if dom(p, q, f.directions) {
			return true
		}
	}
	return false
}

// NonDominates reports that no key of either front dominates any key of
// the other.
func (f *Front[K, V]) NonDominates(other *Front[K, V]) bool {
	for p := range f.index.All() {
		for q := range other.index.All() {
			if p.Dominates(q, f.directions) || q.Dominates(p, f.directions) {
				return false
			}
		}
	}
	return true
}

// IsPartiallyDominatedBy reports whether some key of other dominates some
// key of self.
func (f *Front[K, V]) IsPartiallyDominatedBy(other *Front[K, V]) bool {
	for q := range other.index.All() {
		for p := range f.index.All() {
			if q.Dominates(p, f.directions) {
				return true
			}
		}
	}
	return false
}

// IsCompletelyDominatedBy reports whether every key of self is dominated
// by some key of other.
func (f *Front[K, V]) IsCompletelyDominatedBy(other *Front[K, V]) bool {
	for p := range f.index.All() {
		dominated := false
		for q := range other.index.All() {
			if q.Dominates(p, f.directions) {
				dominated = true
				break
			}
		}
		if !dominated {
			return false
		}
	}
	return true
}
