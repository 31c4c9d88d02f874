// SPDX-License-Identifier: MIT

package pareto

import (
	"iter"
	"math"
)

// rtreeMinEntries and rtreeMaxEntries bound node fanout. Every non-root
// node carries between rtreeMinEntries and rtreeMaxEntries entries;
// exceeding the max triggers a quadratic split, dropping below the min
// triggers a condense-and-reinsert pass from the root.
const (
	rtreeMinEntries = 2
	rtreeMaxEntries = 4
)

// rtreeEntry is either a leaf entry (child nil, key/value meaningful) or
// an internal entry pointing at a child node, tagged by the owning node's
// leaf flag rather than per-entry, since a node's entries are homogeneous.
type rtreeEntry[K Number, V any] struct {
	bbox  Box[K]
	child *rtreeNode[K, V]
	key   Point[K]
	value V
}

type rtreeNode[K Number, V any] struct {
	entries []rtreeEntry[K, V]
	leaf    bool
}

// RTree is a classic Guttman R-tree: entries are grouped into bounding
// boxes that may overlap, split via the quadratic-cost heuristic of the
// original paper, with deletion handled by Guttman's condense-tree
// (detach underflowing nodes, reinsert their leaves from the root).
type RTree[K Number, V any] struct {
	root *rtreeNode[K, V]
	dim  int
	size int
}

// NewRTree returns an empty RTree with a runtime-determined dimension.
func NewRTree[K Number, V any]() *RTree[K, V] {
	return &RTree[K, V]{}
}

func (t *RTree[K, V]) Insert(key Point[K], value V) {
	if err := lockDimension(&t.dim, key, "RTree.Insert"); err != nil {
		panic(err)
	}
	t.insertRaw(key, value)
}

func (t *RTree[K, V]) insertRaw(key Point[K], value V) {
	if t.root == nil {
		t.root = &rtreeNode[K, V]{leaf: true}
	}
	e := rtreeEntry[K, V]{bbox: BoxFromPoint(key), key: key, value: value}
	n1, n2, split := insertRTreeEntry(t.root, e)
	if split {
		t.root = &rtreeNode[K, V]{entries: []rtreeEntry[K, V]{
			{bbox: nodeBBox(n1), child: n1},
			{bbox: nodeBBox(n2), child: n2},
		}}
	} else {
		t.root = n1
	}
	t.size++
}

// insertRTreeEntry descends to a leaf via chooseSubtree, appends e, and
// propagates a quadratic split back up when a node overflows.
func insertRTreeEntry[K Number, V any](n *rtreeNode[K, V], e rtreeEntry[K, V]) (*rtreeNode[K, V], *rtreeNode[K, V], bool) {
	if n.leaf {
		n.entries = append(n.entries, e)
	} else {
		idx := chooseSubtree(n, e.bbox)
		c1, c2, split := insertRTreeEntry(n.entries[idx].child, e)
		if split {
			n.entries[idx] = rtreeEntry[K, V]{bbox: nodeBBox(c1), child: c1}
			n.entries = append(n.entries, rtreeEntry[K, V]{bbox: nodeBBox(c2), child: c2})
		} else {
			n.entries[idx] = rtreeEntry[K, V]{bbox: nodeBBox(c1), child: c1}
		}
	}
	if len(n.entries) > rtreeMaxEntries {
		g1, g2 := quadraticSplit(n.entries)
		return g1, g2, true
	}
	return n, nil, false
}

func nodeBBox[K Number, V any](n *rtreeNode[K, V]) Box[K] {
	box := n.entries[0].bbox
	for _, e := range n.entries[1:] {
		box = box.StretchBox(e.bbox)
	}
	return box
}

// chooseSubtree picks the child requiring least bbox enlargement to admit
// box, breaking ties toward the smaller-area child.
func chooseSubtree[K Number, V any](n *rtreeNode[K, V], box Box[K]) int {
	best := 0
	bestEnl := n.entries[0].bbox.EnlargementBox(box)
	bestArea := n.entries[0].bbox.Volume()
	for i := 1; i < len(n.entries); i++ {
		enl := n.entries[i].bbox.EnlargementBox(box)
		area := n.entries[i].bbox.Volume()
		if enl < bestEnl || (enl == bestEnl && area < bestArea) {
			best, bestEnl, bestArea = i, enl, area
		}
	}
	return best
}

// quadraticSplit implements Guttman's quadratic-cost split algorithm:
// pick the two entries that waste the most area if grouped together as
// seeds, then assign the rest one at a time to whichever group prefers
// them most, respecting the minimum fill.
func quadraticSplit[K Number, V any](entries []rtreeEntry[K, V]) (*rtreeNode[K, V], *rtreeNode[K, V]) {
	leaf := entries[0].child == nil
	s1, s2 := pickSeeds(entries)

	g1 := []rtreeEntry[K, V]{entries[s1]}
	g2 := []rtreeEntry[K, V]{entries[s2]}
	box1 := entries[s1].bbox
	box2 := entries[s2].bbox

	remaining := make([]rtreeEntry[K, V], 0, len(entries)-2)
	for i, e := range entries {
		if i != s1 && i != s2 {
			remaining = append(remaining, e)
		}
	}

	for len(remaining) > 0 {
		if need := rtreeMinEntries - len(g1); need >= len(remaining) {
			g1 = append(g1, remaining...)
			break
		}
		if need := rtreeMinEntries - len(g2); need >= len(remaining) {
			g2 = append(g2, remaining...)
			break
		}

		bestIdx := 0
		bestDiff := math.Inf(-1)
		var bestTo1 bool
		for i, e := range remaining {
			d1 := box1.EnlargementBox(e.bbox)
			d2 := box2.EnlargementBox(e.bbox)
			diff := math.Abs(d1 - d2)
			if diff > bestDiff {
				bestDiff = diff
				bestIdx = i
				bestTo1 = d1 < d2 || (d1 == d2 && box1.Volume() < box2.Volume())
			}
		}

		e := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		if bestTo1 {
			g1 = append(g1, e)
			box1 = box1.StretchBox(e.bbox)
		} else {
			g2 = append(g2, e)
			box2 = box2.StretchBox(e.bbox)
		}
	}

	return &rtreeNode[K, V]{leaf: leaf, entries: g1}, &rtreeNode[K, V]{leaf: leaf, entries: g2}
}

func pickSeeds[K Number, V any](entries []rtreeEntry[K, V]) (int, int) {
	bestI, bestJ := 0, 1
	bestWaste := math.Inf(-1)
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			merged := entries[i].bbox.StretchBox(entries[j].bbox)
			waste := merged.Volume() - entries[i].bbox.Volume() - entries[j].bbox.Volume()
			if waste > bestWaste {
				bestWaste = waste
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ
}

func (t *RTree[K, V]) Erase(key Point[K]) int {
	count := 0
	for t.eraseOne(key) {
		count++
	}
	return count
}

// eraseOne removes one stored entry equal to key, then reinserts every
// leaf entry belonging to any node that underflowed as a result (Guttman's
// condense-tree), and collapses a single-child root.
func (t *RTree[K, V]) eraseOne(key Point[K]) bool {
	if t.root == nil {
		return false
	}
	var orphans []rtreeEntry[K, V]
	if !eraseRTree(t.root, key, &orphans) {
		return false
	}
	t.size--

	for !t.root.leaf && len(t.root.entries) == 1 {
		t.root = t.root.entries[0].child
	}

	t.size -= len(orphans)
	for _, e := range orphans {
		t.insertRaw(e.key, e.value)
	}
	return true
}

// eraseRTree removes key from the subtree rooted at n. When removal
// leaves a child underflowing, the child is detached, its leaves are
// flattened into orphans for reinsertion, and the parent's bbox is kept
// tight over its remaining children.
func eraseRTree[K Number, V any](n *rtreeNode[K, V], key Point[K], orphans *[]rtreeEntry[K, V]) bool {
	if n.leaf {
		for i, e := range n.entries {
			if e.key.Equal(key) {
				n.entries = append(n.entries[:i], n.entries[i+1:]...)
				return true
			}
		}
		return false
	}

	for i := range n.entries {
		child := n.entries[i].child
		if !eraseRTree(child, key, orphans) {
			continue
		}
		switch {
		case len(child.entries) == 0:
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
		case len(child.entries) < rtreeMinEntries:
			*orphans = append(*orphans, collectRTreeLeaves(child)...)
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
		default:
			n.entries[i].bbox = nodeBBox(child)
		}
		return true
	}
	return false
}

func collectRTreeLeaves[K Number, V any](n *rtreeNode[K, V]) []rtreeEntry[K, V] {
	if n.leaf {
		return append([]rtreeEntry[K, V](nil), n.entries...)
	}
	var out []rtreeEntry[K, V]
	for _, e := range n.entries {
		out = append(out, collectRTreeLeaves(e.child)...)
	}
	return out
}

func (t *RTree[K, V]) Find(key Point[K]) (V, bool) {
	if t.root == nil {
		var zero V
		return zero, false
	}
	return findRTree(t.root, key)
}

func findRTree[K Number, V any](n *rtreeNode[K, V], key Point[K]) (V, bool) {
	if n.leaf {
		for _, e := range n.entries {
			if e.key.Equal(key) {
				return e.value, true
			}
		}
		var zero V
		return zero, false
	}
	for _, e := range n.entries {
		if e.bbox.Contains(key) {
			if v, ok := findRTree(e.child, key); ok {
				return v, true
			}
		}
	}
	var zero V
	return zero, false
}

func (t *RTree[K, V]) All() iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		var walk func(*rtreeNode[K, V]) bool
		walk = func(n *rtreeNode[K, V]) bool {
			if n == nil {
				return true
			}
			if n.leaf {
				for _, e := range n.entries {
					if !yield(e.key, e.value) {
						return false
					}
				}
				return true
			}
			for _, e := range n.entries {
				if !walk(e.child) {
					return false
				}
			}
			return true
		}
		walk(t.root)
	}
}

func (t *RTree[K, V]) queryPredicate(preds []predicate[K, V]) iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		var walk func(*rtreeNode[K, V]) bool
		walk = func(n *rtreeNode[K, V]) bool {
			if n == nil {
				return true
			}
			if n.leaf {
				for _, e := range n.entries {
					if passesAll(preds, e.key, e.value) {
						if !yield(e.key, e.value) {
							return false
						}
					}
				}
				return true
			}
			for _, e := range n.entries {
				if !mayPassAll(preds, e.bbox) {
					continue
				}
				if !walk(e.child) {
					return false
				}
			}
			return true
		}
		walk(t.root)
	}
}

func (t *RTree[K, V]) FindIntersection(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addIntersects(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *RTree[K, V]) FindWithin(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addWithin(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *RTree[K, V]) FindDisjoint(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addDisjoint(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *RTree[K, V]) rootBoxOrEmpty() Box[K] {
	if t.root == nil || len(t.root.entries) == 0 {
		var zero Box[K]
		return zero
	}
	return nodeBBox(t.root)
}

func (t *RTree[K, V]) FindNearest(ref Point[K], k int) iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		if t.root == nil {
			return
		}
		type leaf struct {
			key Point[K]
			val V
		}
		expand := func(payload any, push func(float64, bool, any)) {
			n := payload.(*rtreeNode[K, V])
			for _, e := range n.entries {
				if n.leaf {
					push(ref.Distance(e.key), true, leaf{e.key, e.value})
				} else {
					push(e.bbox.Distance(ref), false, e.child)
				}
			}
		}
		seed := []nearestQueueItem{{dist: 0, isLeaf: false, payload: t.root}}
		runNearest(seed, expand, k, func(payload any) bool {
			l := payload.(leaf)
			return yield(l.key, l.val)
		})
	}
}

func (t *RTree[K, V]) MaxElement(dim int) (Point[K], V, bool) {
	return t.extremum(dim, func(box Box[K]) K { return box.Max().At(dim) }, func(a, b K) bool { return a > b })
}

func (t *RTree[K, V]) MinElement(dim int) (Point[K], V, bool) {
	return t.extremum(dim, func(box Box[K]) K { return box.Min().At(dim) }, func(a, b K) bool { return a < b })
}

func (t *RTree[K, V]) extremum(dim int, bound func(Box[K]) K, better func(a, b K) bool) (Point[K], V, bool) {
	if t.root == nil {
		var zeroK Point[K]
		var zeroV V
		return zeroK, zeroV, false
	}
	var bestKey Point[K]
	var bestVal V
	found := false
	var walk func(*rtreeNode[K, V])
	walk = func(n *rtreeNode[K, V]) {
		for _, e := range n.entries {
			if n.leaf {
				if !found || better(e.key.At(dim), bestKey.At(dim)) {
					bestKey, bestVal, found = e.key, e.value, true
				}
				continue
			}
			if found && better(bestKey.At(dim), bound(e.bbox)) {
				continue
			}
			walk(e.child)
		}
	}
	walk(t.root)
	return bestKey, bestVal, found
}

func (t *RTree[K, V]) Dimensions() int { return t.dim }
func (t *RTree[K, V]) Size() int       { return t.size }
func (t *RTree[K, V]) Empty() bool     { return t.size == 0 }

func (t *RTree[K, V]) Clear() {
	t.root = nil
	t.dim = 0
	t.size = 0
}

func (t *RTree[K, V]) BoundingBox() (Box[K], bool) {
	if t.root == nil || len(t.root.entries) == 0 {
		var zero Box[K]
		return zero, false
	}
	return nodeBBox(t.root), true
}
