// SPDX-License-Identifier: MIT

package pareto

import (
	"iter"
	"sort"

	"github.com/alandefreitas/paretogo/internal/sparse"
)

// quadNode is a point quad-tree node: it holds one entry itself, plus up
// to 2^Dim children indexed by the orthant of the child's key relative to
// this node's key (see [Point.Quadrant]). Children are kept in a
// popcount-compressed sparse array when the orthant space fits in 256
// slots (Dim <= 8); wider trees fall back to a plain map, since their
// 2^Dim orthant indices exceed 256 slots.
type quadNode[K Number, V any] struct {
	key      Point[K]
	value    V
	children orthantChildren[K, V]
	bbox     Box[K]
}

// orthantChildren abstracts over the two storage strategies above behind
// one small interface so quadNode doesn't care which is in play.
type orthantChildren[K Number, V any] struct {
	fast *sparse.Array256[*quadNode[K, V]]
	slow map[int]*quadNode[K, V]
}

func newOrthantChildren[K Number, V any](dim int) orthantChildren[K, V] {
	if dim <= 8 {
		return orthantChildren[K, V]{fast: &sparse.Array256[*quadNode[K, V]]{}}
	}
	return orthantChildren[K, V]{slow: make(map[int]*quadNode[K, V])}
}

func (c *orthantChildren[K, V]) get(i int) (*quadNode[K, V], bool) {
	if c.fast != nil {
		return c.fast.Get(uint(i))
	}
	n, ok := c.slow[i]
	return n, ok
}

func (c *orthantChildren[K, V]) set(i int, n *quadNode[K, V]) {
	if c.fast != nil {
		c.fast.InsertAt(uint(i), n)
		return
	}
	c.slow[i] = n
}

func (c *orthantChildren[K, V]) delete(i int) {
	if c.fast != nil {
		c.fast.DeleteAt(uint(i))
		return
	}
	delete(c.slow, i)
}

func (c *orthantChildren[K, V]) all() []*quadNode[K, V] {
	if c.fast != nil {
		return c.fast.Items
	}
	out := make([]*quadNode[K, V], 0, len(c.slow))
	for _, n := range c.slow {
		out = append(out, n)
	}
	return out
}

// QuadTree is a point quad-tree: each node stores one entry and partitions
// the remaining descendants into up to 2^Dim orthants relative to it.
type QuadTree[K Number, V any] struct {
	root *quadNode[K, V]
	dim  int
	size int
}

// NewQuadTree returns an empty QuadTree with a runtime-determined dimension.
func NewQuadTree[K Number, V any]() *QuadTree[K, V] {
	return &QuadTree[K, V]{}
}

func (t *QuadTree[K, V]) Insert(key Point[K], value V) {
	if err := lockDimension(&t.dim, key, "QuadTree.Insert"); err != nil {
		panic(err)
	}
	t.insertRaw(key, value)
}

func (t *QuadTree[K, V]) insertRaw(key Point[K], value V) {
	t.root = insertQuad(t.root, key, value, t.dim)
	t.size++
}

func insertQuad[K Number, V any](n *quadNode[K, V], key Point[K], value V, dim int) *quadNode[K, V] {
	if n == nil {
		return &quadNode[K, V]{key: key, value: value, children: newOrthantChildren[K, V](dim), bbox: BoxFromPoint(key)}
	}
	q := key.Quadrant(n.key)
	child, ok := n.children.get(q)
	if !ok {
		n.children.set(q, &quadNode[K, V]{key: key, value: value, children: newOrthantChildren[K, V](dim), bbox: BoxFromPoint(key)})
	} else {
		n.children.set(q, insertQuad(child, key, value, dim))
	}
	n.bbox = n.bbox.Stretch(key)
	return n
}

func (t *QuadTree[K, V]) Erase(key Point[K]) int {
	count := 0
	for t.eraseOne(key) {
		count++
	}
	return count
}

// eraseOne removes one stored entry equal to key by disconnecting its
// node, collecting every descendant entry, and bulk-reinserting them in
// median-first order (the order a balanced BST built from the sorted
// entries would visit them in a pre-order walk) to keep the replacement
// subtree reasonably balanced.
func (t *QuadTree[K, V]) eraseOne(key Point[K]) bool {
	if t.root == nil {
		return false
	}
	if t.root.key.Equal(key) {
		descendants := collectQuadDescendants(t.root)
		t.root = nil
		t.size--
		for _, e := range medianFirstOrder(descendants) {
			t.root = insertQuad(t.root, e.Key, e.Value, t.dim)
		}
		t.recomputeAllBBoxes()
		return true
	}

	parent := t.root
	for {
		q := key.Quadrant(parent.key)
		child, ok := parent.children.get(q)
		if !ok {
			return false
		}
		if child.key.Equal(key) {
			descendants := collectQuadDescendants(child)
			parent.children.delete(q)
			t.size--
			for _, e := range medianFirstOrder(descendants) {
				t.root = insertQuad(t.root, e.Key, e.Value, t.dim)
			}
			t.recomputeAllBBoxes()
			return true
		}
		parent = child
	}
}

// collectQuadDescendants returns every entry strictly beneath n (not
// including n's own entry).
func collectQuadDescendants[K Number, V any](n *quadNode[K, V]) []Entry[K, V] {
	var out []Entry[K, V]
	for _, c := range n.children.all() {
		out = append(out, collectQuadSubtree(c)...)
	}
	return out
}

func collectQuadSubtree[K Number, V any](n *quadNode[K, V]) []Entry[K, V] {
	if n == nil {
		return nil
	}
	out := []Entry[K, V]{{Key: n.key, Value: n.value}}
	for _, c := range n.children.all() {
		out = append(out, collectQuadSubtree(c)...)
	}
	return out
}

func medianFirstOrder[K Number, V any](entries []Entry[K, V]) []Entry[K, V] {
	sorted := append([]Entry[K, V](nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key.Less(sorted[j].Key) })

	out := make([]Entry[K, V], 0, len(sorted))
	var rec func(lo, hi int)
	rec = func(lo, hi int) {
		if lo >= hi {
			return
		}
		mid := (lo + hi) / 2
		out = append(out, sorted[mid])
		rec(lo, mid)
		rec(mid+1, hi)
	}
	rec(0, len(sorted))
	return out
}

func (t *QuadTree[K, V]) recomputeAllBBoxes() {
	var walk func(n *quadNode[K, V]) Box[K]
	walk = func(n *quadNode[K, V]) Box[K] {
		box := BoxFromPoint(n.key)
		for _, c := range n.children.all() {
			box = box.StretchBox(walk(c))
		}
		n.bbox = box
		return box
	}
	if t.root != nil {
		walk(t.root)
	}
}

func (t *QuadTree[K, V]) Find(key Point[K]) (V, bool) {
	n := t.root
	for n != nil {
		if n.key.Equal(key) {
			return n.value, true
		}
		child, ok := n.children.get(key.Quadrant(n.key))
		if !ok {
			break
		}
		n = child
	}
	var zero V
	return zero, false
}

func (t *QuadTree[K, V]) All() iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		var walk func(*quadNode[K, V]) bool
		walk = func(n *quadNode[K, V]) bool {
			if n == nil {
				return true
			}
			if !yield(n.key, n.value) {
				return false
			}
			for _, c := range n.children.all() {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(t.root)
	}
}

func (t *QuadTree[K, V]) queryPredicate(preds []predicate[K, V]) iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		var walk func(*quadNode[K, V]) bool
		walk = func(n *quadNode[K, V]) bool {
			if n == nil || !mayPassAll(preds, n.bbox) {
				return true
			}
			if passesAll(preds, n.key, n.value) {
				if !yield(n.key, n.value) {
					return false
				}
			}
			for _, c := range n.children.all() {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(t.root)
	}
}

func (t *QuadTree[K, V]) FindIntersection(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addIntersects(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *QuadTree[K, V]) FindWithin(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addWithin(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *QuadTree[K, V]) FindDisjoint(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addDisjoint(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *QuadTree[K, V]) rootBoxOrEmpty() Box[K] {
	if t.root == nil {
		var zero Box[K]
		return zero
	}
	return t.root.bbox
}

func (t *QuadTree[K, V]) FindNearest(ref Point[K], k int) iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		if t.root == nil {
			return
		}
		type leaf struct {
			key Point[K]
			val V
		}
		expand := func(payload any, push func(float64, bool, any)) {
			n := payload.(*quadNode[K, V])
			push(ref.Distance(n.key), true, leaf{n.key, n.value})
			for _, c := range n.children.all() {
				push(c.bbox.Distance(ref), false, c)
			}
		}
		seed := []nearestQueueItem{{dist: t.root.bbox.Distance(ref), isLeaf: false, payload: t.root}}
		runNearest(seed, expand, k, func(payload any) bool {
			l := payload.(leaf)
			return yield(l.key, l.val)
		})
	}
}

func (t *QuadTree[K, V]) MaxElement(dim int) (Point[K], V, bool) {
	return t.extremum(dim, func(box Box[K]) K { return box.Max().At(dim) }, func(a, b K) bool { return a > b })
}

func (t *QuadTree[K, V]) MinElement(dim int) (Point[K], V, bool) {
	return t.extremum(dim, func(box Box[K]) K { return box.Min().At(dim) }, func(a, b K) bool { return a < b })
}

func (t *QuadTree[K, V]) extremum(dim int, bound func(Box[K]) K, better func(a, b K) bool) (Point[K], V, bool) {
	if t.root == nil {
		var zeroK Point[K]
		var zeroV V
		return zeroK, zeroV, false
	}
	bestKey, bestVal := t.root.key, t.root.value
	var walk func(*quadNode[K, V])
	walk = func(n *quadNode[K, V]) {
		if n == nil {
			return
		}
		if n != t.root && better(bestKey.At(dim), bound(n.bbox)) {
			return
		}
		if better(n.key.At(dim), bestKey.At(dim)) {
			bestKey, bestVal = n.key, n.value
		}
		for _, c := range n.children.all() {
			walk(c)
		}
	}
	walk(t.root)
	return bestKey, bestVal, true
}

func (t *QuadTree[K, V]) Dimensions() int { return t.dim }
func (t *QuadTree[K, V]) Size() int       { return t.size }
func (t *QuadTree[K, V]) Empty() bool     { return t.size == 0 }

func (t *QuadTree[K, V]) Clear() {
	t.root = nil
	t.dim = 0
	t.size = 0
}

func (t *QuadTree[K, V]) BoundingBox() (Box[K], bool) {
	if t.root == nil {
		var zero Box[K]
		return zero, false
	}
	return t.root.bbox, true
}
