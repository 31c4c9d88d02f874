// SPDX-License-Identifier: MIT

package pareto

import "iter"

// kdNode is a single entry plus two children. Each node's splitDimension
// is its depth modulo the tree's dimension; insertion compares only that
// coordinate to decide which child to descend into. bbox is the tight
// bounding box of the node's own key and the whole subtree beneath it.
//
// Rather than raw parent pointers (a cyclic graph in the source this
// package is modeled on), mutation here is expressed as ordinary
// recursive functions that return the (possibly new) subtree root; the
// caller re-links it into its own child slot and recomputes its bbox.
// This keeps node ownership a plain tree instead of a graph, while still
// satisfying the "bbox is the tight union of descendants" invariant.
type kdNode[K Number, V any] struct {
	key      Point[K]
	value    V
	left     *kdNode[K, V]
	right    *kdNode[K, V]
	splitDim int
	bbox     Box[K]
}

// KDTree is a binary space partition: each node holds one entry and splits
// remaining descendants on a dimension that cycles with tree depth.
type KDTree[K Number, V any] struct {
	root *kdNode[K, V]
	dim  int
	size int
}

// NewKDTree returns an empty KDTree with a runtime-determined dimension.
func NewKDTree[K Number, V any]() *KDTree[K, V] {
	return &KDTree[K, V]{}
}

func (t *KDTree[K, V]) Insert(key Point[K], value V) {
	if err := lockDimension(&t.dim, key, "KDTree.Insert"); err != nil {
		panic(err)
	}
	t.root = insertKD(t.root, key, value, 0, t.dim)
	t.size++
}

func insertKD[K Number, V any](n *kdNode[K, V], key Point[K], value V, depth, dim int) *kdNode[K, V] {
	if n == nil {
		return &kdNode[K, V]{key: key, value: value, splitDim: depth % dim, bbox: BoxFromPoint(key)}
	}
	if key.At(n.splitDim) < n.key.At(n.splitDim) {
		n.left = insertKD(n.left, key, value, depth+1, dim)
	} else {
		n.right = insertKD(n.right, key, value, depth+1, dim)
	}
	n.bbox = n.bbox.Stretch(key)
	return n
}

func (t *KDTree[K, V]) Erase(key Point[K]) int {
	count := 0
	for {
		newRoot, removed := eraseKD(t.root, key)
		if !removed {
			break
		}
		t.root = newRoot
		t.size--
		count++
	}
	return count
}

// eraseKD removes one node equal to key, if any. The descent follows the
// same rule insertKD used to place it, so it is guaranteed to find any
// stored copy of key in a single downward pass.
func eraseKD[K Number, V any](n *kdNode[K, V], key Point[K]) (*kdNode[K, V], bool) {
	if n == nil {
		return nil, false
	}
	if key.At(n.splitDim) < n.key.At(n.splitDim) {
		newLeft, removed := eraseKD(n.left, key)
		if !removed {
			return n, false
		}
		n.left = newLeft
		n.bbox = recomputeKDBBox(n)
		return n, true
	}
	if n.key.Equal(key) {
		return deleteKDNode(n), true
	}
	newRight, removed := eraseKD(n.right, key)
	if !removed {
		return n, false
	}
	n.right = newRight
	n.bbox = recomputeKDBBox(n)
	return n, true
}

// deleteKDNode removes n itself, per Bentley's algorithm: pull the
// minimum (on n's split dimension) out of the right child, or out of the
// left child when there is no right child (the left subtree then becomes
// the right subtree), to replace n, then recursively delete that minimum
// from where it was.
func deleteKDNode[K Number, V any](n *kdNode[K, V]) *kdNode[K, V] {
	switch {
	case n.right != nil:
		minKey, minVal := findMinKD(n.right, n.splitDim)
		n.key, n.value = minKey, minVal
		n.right, _ = eraseKD(n.right, minKey)
	case n.left != nil:
		minKey, minVal := findMinKD(n.left, n.splitDim)
		n.key, n.value = minKey, minVal
		n.right, _ = eraseKD(n.left, minKey)
		n.left = nil
	default:
		return nil
	}
	n.bbox = recomputeKDBBox(n)
	return n
}

// findMinKD returns the entry with the smallest coordinate on dimension d
// within the subtree rooted at n, pruning subtrees whose bbox cannot beat
// the best candidate found so far.
func findMinKD[K Number, V any](n *kdNode[K, V], d int) (Point[K], V) {
	best, bestVal := n.key, n.value
	var walk func(*kdNode[K, V])
	walk = func(m *kdNode[K, V]) {
		if m == nil || m.bbox.Min().At(d) >= best.At(d) {
			return
		}
		if m.key.At(d) < best.At(d) {
			best, bestVal = m.key, m.value
		}
		if m.splitDim == d {
			walk(m.left)
			return
		}
		walk(m.left)
		walk(m.right)
	}
	walk(n.left)
	walk(n.right)
	return best, bestVal
}

func recomputeKDBBox[K Number, V any](n *kdNode[K, V]) Box[K] {
	box := BoxFromPoint(n.key)
	if n.left != nil {
		box = box.StretchBox(n.left.bbox)
	}
	if n.right != nil {
		box = box.StretchBox(n.right.bbox)
	}
	return box
}

func (t *KDTree[K, V]) Find(key Point[K]) (V, bool) {
	n := t.root
	for n != nil {
		if n.key.Equal(key) {
			return n.value, true
		}
		if key.At(n.splitDim) < n.key.At(n.splitDim) {
			n = n.left
		} else {
			n = n.right
		}
	}
	var zero V
	return zero, false
}

func (t *KDTree[K, V]) All() iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		var walk func(*kdNode[K, V]) bool
		walk = func(n *kdNode[K, V]) bool {
			if n == nil {
				return true
			}
			if !walk(n.left) {
				return false
			}
			if !yield(n.key, n.value) {
				return false
			}
			return walk(n.right)
		}
		walk(t.root)
	}
}

func (t *KDTree[K, V]) queryPredicate(preds []predicate[K, V]) iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		var walk func(*kdNode[K, V]) bool
		walk = func(n *kdNode[K, V]) bool {
			if n == nil || !mayPassAll(preds, n.bbox) {
				return true
			}
			if !walk(n.left) {
				return false
			}
			if passesAll(preds, n.key, n.value) {
				if !yield(n.key, n.value) {
					return false
				}
			}
			return walk(n.right)
		}
		walk(t.root)
	}
}

func (t *KDTree[K, V]) FindIntersection(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addIntersects(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *KDTree[K, V]) FindWithin(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addWithin(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *KDTree[K, V]) FindDisjoint(lo, hi Point[K]) iter.Seq2[Point[K], V] {
	var pl predicateList[K, V]
	pl.addDisjoint(NewBox(lo, hi))
	return t.queryPredicate(pl.geometric(t.rootBoxOrEmpty()))
}

func (t *KDTree[K, V]) rootBoxOrEmpty() Box[K] {
	if t.root == nil {
		var zero Box[K]
		return zero
	}
	return t.root.bbox
}

func (t *KDTree[K, V]) FindNearest(ref Point[K], k int) iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		if t.root == nil {
			return
		}
		type leaf struct {
			key Point[K]
			val V
		}
		expand := func(payload any, push func(float64, bool, any)) {
			n := payload.(*kdNode[K, V])
			push(ref.Distance(n.key), true, leaf{n.key, n.value})
			if n.left != nil {
				push(n.left.bbox.Distance(ref), false, n.left)
			}
			if n.right != nil {
				push(n.right.bbox.Distance(ref), false, n.right)
			}
		}
		seed := []nearestQueueItem{{dist: t.root.bbox.Distance(ref), isLeaf: false, payload: t.root}}
		runNearest(seed, expand, k, func(payload any) bool {
			l := payload.(leaf)
			return yield(l.key, l.val)
		})
	}
}

func (t *KDTree[K, V]) MaxElement(dim int) (Point[K], V, bool) {
	return t.extremum(dim, func(box Box[K]) K { return box.Max().At(dim) }, func(a, b K) bool { return a > b })
}

func (t *KDTree[K, V]) MinElement(dim int) (Point[K], V, bool) {
	return t.extremum(dim, func(box Box[K]) K { return box.Min().At(dim) }, func(a, b K) bool { return a < b })
}

// extremum walks the tree pruning any subtree whose bbox cannot possibly
// improve on the best candidate found so far, giving O(log n) expected
// behaviour when the tree is reasonably balanced.
func (t *KDTree[K, V]) extremum(dim int, bound func(Box[K]) K, better func(a, b K) bool) (Point[K], V, bool) {
	if t.root == nil {
		var zeroK Point[K]
		var zeroV V
		return zeroK, zeroV, false
	}
	bestKey, bestVal := t.root.key, t.root.value
	var walk func(*kdNode[K, V])
	walk = func(n *kdNode[K, V]) {
		if n == nil {
			return
		}
		if n != t.root && better(bestKey.At(dim), bound(n.bbox)) {
			// current best already beats anything this subtree can offer
			return
		}
		if better(n.key.At(dim), bestKey.At(dim)) {
			bestKey, bestVal = n.key, n.value
		}
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return bestKey, bestVal, true
}

func (t *KDTree[K, V]) Dimensions() int { return t.dim }
func (t *KDTree[K, V]) Size() int       { return t.size }
func (t *KDTree[K, V]) Empty() bool     { return t.size == 0 }

func (t *KDTree[K, V]) Clear() {
	t.root = nil
	t.dim = 0
	t.size = 0
}

func (t *KDTree[K, V]) BoundingBox() (Box[K], bool) {
	if t.root == nil {
		var zero Box[K]
		return zero, false
	}
	return t.root.bbox, true
}
