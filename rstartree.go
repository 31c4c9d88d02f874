// SPDX-License-Identifier: MIT

package pareto

import (
	"iter"
	"math"
	"sort"
)

const (
	rstarMinEntries  = 2
	rstarMaxEntries  = 4
	reinsertFraction = 0.3
)

// rstarEntry mirrors rtreeEntry: leaf entries carry key/value, internal
// entries carry a child pointer, selected by the owning node's leaf flag.
type rstarEntry[K Number, V any] struct {
	bbox  Box[K]
	child *rstarNode[K, V]
	key   Point[K]
	value V
}

type rstarNode[K Number, V any] struct {
	entries []rstarEntry[K, V]
	leaf    bool
}

// RStarTree is an R*-tree: subtree choice minimizes overlap enlargement
// at the level just above the leaves, splitting picks the axis with the
// smallest total margin across every valid distribution and then the
// distribution minimizing overlap, and a leaf that overflows is given one
// chance per top-level Insert call to shed its farthest-from-center 30%
// of entries for reinsertion from the root before a split is forced.
//
// Forced reinsertion is applied only at leaf level; an overflowing
// internal node always splits. This keeps the reinsertion bookkeeping to
// a single flag per Insert call instead of per-level state, at the cost
// of some of the paper's tree quality on deep trees.
type RStarTree[K Number, V any] struct {
	root *rstarNode[K, V]
	dim  int
	size int
}

// NewRStarTree returns an empty RStarTree with a runtime-determined dimension.
func NewRStarTree[K Number, V any]() *RStarTree[K, V] {
	return &RStarTree[K, V]{}
}

func (t *RStarTree[K, V]) Insert(key Point[K], value V) {
	if err := lockDimension(&t.dim, key, "RStarTree.Insert"); err != nil {
		panic(err)
	}
	t.insertRaw(key, value)
}

func (t *RStarTree[K, V]) insertRaw(key Point[K], value V) {
	if t.root == nil {
		t.root = &rstarNode[K, V]{leaf: true}
	}
	reinserted := false
	pending := []rstarEntry[K, V]{{bbox: BoxFromPoint(key), key: key, value: value}}
	for len(pending) > 0 {
		e := pending[0]
		pending = pending[1:]
		n1, n2, split, reins := t.insertEntry(t.root, e, &reinserted)
		if split {
			t.root = &rstarNode[K, V]{entries: []rstarEntry[K, V]{
				{bbox: nodeBBoxStar(n1), child: n1},
				{bbox: nodeBBoxStar(n2), child: n2},
			}}
		} else {
			t.root = n1
		}
		pending = append(pending, reins...)
	}
	t.size++
}

func (t *RStarTree[K, V]) insertEntry(
	n *rstarNode[K, V], e rstarEntry[K, V], reinserted *bool,
) (*rstarNode[K, V], *rstarNode[K, V], bool, []rstarEntry[K, V]) {
	var reins []rstarEntry[K, V]
	if n.leaf {
		n.entries = append(n.entries, e)
	} else {
		idx := chooseSubtreeStar(n, e.bbox)
		c1, c2, split, childReins := t.insertEntry(n.entries[idx].child, e, reinserted)
		reins = childReins
		if split {
			n.entries[idx] = rstarEntry[K, V]{bbox: nodeBBoxStar(c1), child: c1}
			n.entries = append(n.entries, rstarEntry[K, V]{bbox: nodeBBoxStar(c2), child: c2})
		} else {
			n.entries[idx] = rstarEntry[K, V]{bbox: nodeBBoxStar(c1), child: c1}
		}
	}

	if len(n.entries) <= rstarMaxEntries {
		return n, nil, false, reins
	}
	if n.leaf && !*reinserted {
		*reinserted = true
		keep, out := forcedReinsert(n)
		n.entries = keep
		return n, nil, false, append(reins, out...)
	}
	g1, g2 := rStarSplit(n.entries)
	return g1, g2, true, reins
}

func nodeBBoxStar[K Number, V any](n *rstarNode[K, V]) Box[K] {
	box := n.entries[0].bbox
	for _, e := range n.entries[1:] {
		box = box.StretchBox(e.bbox)
	}
	return box
}

// forcedReinsert removes the reinsertFraction entries farthest from n's
// bbox center, returning the entries to keep and the entries to reinsert
// from the root.
func forcedReinsert[K Number, V any](n *rstarNode[K, V]) (keep, out []rstarEntry[K, V]) {
	box := nodeBBoxStar(n)
	center := box.Center()

	type scored struct {
		e rstarEntry[K, V]
		d float64
	}
	list := make([]scored, len(n.entries))
	for i, e := range n.entries {
		ec := e.bbox.Center()
		var d float64
		for j := range center {
			diff := center[j] - ec[j]
			d += diff * diff
		}
		list[i] = scored{e, d}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].d > list[j].d })

	p := int(math.Round(float64(len(list)) * reinsertFraction))
	if p < 1 {
		p = 1
	}
	if p >= len(list) {
		p = len(list) - 1
	}

	for i := 0; i < p; i++ {
		out = append(out, list[i].e)
	}
	for i := p; i < len(list); i++ {
		keep = append(keep, list[i].e)
	}
	return keep, out
}

func chooseSubtreeStar[K Number, V any](n *rstarNode[K, V], box Box[K]) int {
	if len(n.entries) > 0 && n.entries[0].child != nil && n.entries[0].child.leaf {
		return chooseSubtreeMinOverlap(n, box)
	}
	return chooseSubtreeMinEnlargement(n, box)
}

func chooseSubtreeMinEnlargement[K Number, V any](n *rstarNode[K, V], box Box[K]) int {
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

// chooseSubtreeMinOverlap picks the child whose enlargement to admit box
// increases the least overlap with its siblings, breaking ties by plain
// enlargement and then by area, as in the R*-tree paper's leaf-level rule.
func chooseSubtreeMinOverlap[K Number, V any](n *rstarNode[K, V], box Box[K]) int {
	best := 0
	bestOverlapEnl := math.Inf(1)
	bestEnl := math.Inf(1)
	bestArea := math.Inf(1)
	for i := range n.entries {
		enlarged := n.entries[i].bbox.StretchBox(box)

		var before, after float64
		for j := range n.entries {
			if j == i {
				continue
			}
			before += n.entries[i].bbox.OverlapVolume(n.entries[j].bbox)
			after += enlarged.OverlapVolume(n.entries[j].bbox)
		}
		overlapEnl := after - before
		enl := enlarged.Volume() - n.entries[i].bbox.Volume()
		area := n.entries[i].bbox.Volume()

		switch {
		case overlapEnl < bestOverlapEnl:
			best, bestOverlapEnl, bestEnl, bestArea = i, overlapEnl, enl, area
		case overlapEnl == bestOverlapEnl && enl < bestEnl:
			best, bestEnl, bestArea = i, enl, area
		case overlapEnl == bestOverlapEnl && enl == bestEnl && area < bestArea:
			best, bestArea = i, area
		}
	}
	return best
}

// rStarSplit picks the axis minimizing the summed margin (perimeter) over
// every valid distribution sorted by lower bound on that axis, then picks
// the distribution on that axis minimizing overlap, tie-broken by area.
func rStarSplit[K Number, V any](entries []rstarEntry[K, V]) (*rstarNode[K, V], *rstarNode[K, V]) {
	leaf := entries[0].child == nil
	dim := entries[0].bbox.Dim()

	bestAxis := 0
	bestMargin := math.Inf(1)
	for axis := 0; axis < dim; axis++ {
		sorted := append([]rstarEntry[K, V](nil), entries...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].bbox.Min().At(axis) < sorted[j].bbox.Min().At(axis) })
		if margin := marginSum(sorted); margin < bestMargin {
			bestMargin, bestAxis = margin, axis
		}
	}

	sorted := append([]rstarEntry[K, V](nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].bbox.Min().At(bestAxis) < sorted[j].bbox.Min().At(bestAxis) })

	bestIdx := rstarMinEntries
	bestOverlap := math.Inf(1)
	bestArea := math.Inf(1)
	for k := rstarMinEntries; k <= len(sorted)-rstarMinEntries; k++ {
		box1 := groupBBoxStar(sorted[:k])
		box2 := groupBBoxStar(sorted[k:])
		overlap := box1.OverlapVolume(box2)
		area := box1.Volume() + box2.Volume()
		if overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
			bestOverlap, bestArea, bestIdx = overlap, area, k
		}
	}

	g1 := append([]rstarEntry[K, V](nil), sorted[:bestIdx]...)
	g2 := append([]rstarEntry[K, V](nil), sorted[bestIdx:]...)
	return &rstarNode[K, V]{leaf: leaf, entries: g1}, &rstarNode[K, V]{leaf: leaf, entries: g2}
}

func marginSum[K Number, V any](sorted []rstarEntry[K, V]) float64 {
	var sum float64
	for k := rstarMinEntries; k <= len(sorted)-rstarMinEntries; k++ {
		sum += groupBBoxStar(sorted[:k]).Perimeter() + groupBBoxStar(sorted[k:]).Perimeter()
	}
	return sum
}

func groupBBoxStar[K Number, V any](es []rstarEntry[K, V]) Box[K] {
	box := es[0].bbox
	for _, e := range es[1:] {
		box = box.StretchBox(e.bbox)
	}
	return box
}

func (t *RStarTree[K, V]) Erase(key Point[K]) int {
	count := 0
	for t.eraseOne(key) {
		count++
	}
	return count
}

func (t *RStarTree[K, V]) eraseOne(key Point[K]) bool {
	if t.root == nil {
		return false
	}
	var orphans []rstarEntry[K, V]
	if !eraseRStar(t.root, key, &orphans) {
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

func eraseRStar[K Number, V any](n *rstarNode[K, V], key Point[K], orphans *[]rstarEntry[K, V]) bool {
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
		if !eraseRStar(child, key, orphans) {
			continue
		}
		switch {
		case len(child.entries) == 0:
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
		case len(child.entries) < rstarMinEntries:
			*orphans = append(*orphans, collectRStarLeaves(child)...)
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
		default:
			n.entries[i].bbox = nodeBBoxStar(child)
		}
		return true
	}
	return false
}

func collectRStarLeaves[K Number, V any](n *rstarNode[K, V]) []rstarEntry[K, V] {
	if n.leaf {
		return append([]rstarEntry[K, V](nil), n.entries...)
	}
	var out []rstarEntry[K, V]
	for _, e := range n.entries {
		out = append(out, collectRStarLeaves(e.child)...)
	}
	return out
}

func (t *RStarTree[K, V]) Find(key Point[K]) (V, bool) {
	if t.root == nil {
		var zero V
		return zero, false
	}
	return findRStar(t.root, key)
}

func findRStar[K Number, V any](n *rstarNode[K, V], key Point[K]) (V, bool) {
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
			if v, ok := findRStar(e.child, key); ok {
				return v, true
			}
		}
	}
	var zero V
	return zero, false
}

func (t *RStarTree[K, V]) All() iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		var walk func(*rstarNode[K, V]) bool
		walk = func(n *rstarNode[K, V]) bool {
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

func (t *RStarTree[K, V]) queryPredicate(preds []predicate[K, V]) iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		var walk func(*rstarNode[K, V]) bool
		walk = func(n *rstarNode[K, V]) bool {
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

func (t *RStarTree[K, V]) FindIntersection(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addIntersects(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *RStarTree[K, V]) FindWithin(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addWithin(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *RStarTree[K, V]) FindDisjoint(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addDisjoint(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *RStarTree[K, V]) rootBoxOrEmpty() Box[K] {
	if t.root == nil || len(t.root.entries) == 0 {
		var zero Box[K]
		return zero
	}
	return nodeBBoxStar(t.root)
}

func (t *RStarTree[K, V]) FindNearest(ref Point[K], k int) iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		if t.root == nil {
			return
		}
		type leaf struct {
			key Point[K]
			val V
		}
		expand := func(payload any, push func(float64, bool, any)) {
			n := payload.(*rstarNode[K, V])
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

func (t *RStarTree[K, V]) MaxElement(dim int) (Point[K], V, bool) {
	return t.extremum(dim, func(box Box[K]) K { return box.Max().At(dim) }, func(a, b K) bool { return a > b })
}

func (t *RStarTree[K, V]) MinElement(dim int) (Point[K], V, bool) {
	return t.extremum(dim, func(box Box[K]) K { return box.Min().At(dim) }, func(a, b K) bool { return a < b })
}

func (t *RStarTree[K, V]) extremum(dim int, bound func(Box[K]) K, better func(a, b K) bool) (Point[K], V, bool) {
	if t.root == nil {
		var zeroK Point[K]
		var zeroV V
		return zeroK, zeroV, false
	}
	var bestKey Point[K]
	var bestVal V
	found := false
	var walk func(*rstarNode[K, V])
	walk = func(n *rstarNode[K, V]) {
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

func (t *RStarTree[K, V]) Dimensions() int { return t.dim }
func (t *RStarTree[K, V]) Size() int       { return t.size }
func (t *RStarTree[K, V]) Empty() bool     { return t.size == 0 }

func (t *RStarTree[K, V]) Clear() {
	t.root = nil
	t.dim = 0
	t.size = 0
}

func (t *RStarTree[K, V]) BoundingBox() (Box[K], bool) {
	if t.root == nil || len(t.root.entries) == 0 {
		var zero Box[K]
		return zero, false
	}
	return nodeBBoxStar(t.root), true
}
