// SPDX-License-Identifier: MIT

package pareto

import (
	"math/rand/v2"
	"sort"

	"github.com/emirpasic/gods/trees/avltree"
	"github.com/emirpasic/gods/utils"
)

// Hypervolume returns the exact M-dimensional Lebesgue measure of the
// union of axis-aligned boxes anchored between each stored key and ref,
// oriented toward the ideal under the front's directions. ref must be
// strictly worse than every stored key on every dimension.
//
// The computation is a dimension-sweep (HSO-style) reduction: the last
// coordinate is swept and the problem recurses on the remaining M-1
// dimensions, terminating at a direct sweep for one dimension and a
// balanced-tree-maintained skyline for two, matching the source
// algorithm's structure (see Design Notes). Unlike the source's
// AVL-tree-plus-doubly-linked-list per sweep level, this implementation
// rebuilds the active skyline from the tree's sorted contents at each
// step rather than maintaining an incremental area; this trades some
// asymptotic efficiency for a much smaller surface to get wrong, which
// the spec explicitly permits provided the result is exact.
func (f *Front[K, V]) Hypervolume(ref Point[K]) (float64, error) {
	if f.Empty() {
		return 0, wrapError("Front.Hypervolume", EmptyContainer, nil)
	}
	if ref.Dim() != f.Dimensions() {
		return 0, wrapError("Front.Hypervolume", DimensionMismatch, errDimFmt(ref.Dim(), f.Dimensions()))
	}

	dim := f.Dimensions()
	for k := range f.index.All() {
		for i := 0; i < dim; i++ {
			minimize := i < len(f.directions) && f.directions[i]
			if !strictlyBetter(k.At(i), ref.At(i), minimize) {
				return 0, wrapError("Front.Hypervolume", ReferencePointInvalid, nil)
			}
		}
	}

	points := make([][]float64, 0, f.Size())
	for k := range f.index.All() {
		points = append(points, f.transform(k))
	}
	refT := f.transformPoint(ref)

	return hsoVolume(points, refT), nil
}

// HypervolumeMonteCarlo estimates the hypervolume by drawing sampleCount
// uniform samples inside the bounding box [ideal, ref] and returning
// volume(bbox) times the fraction of samples weakly dominated by some
// stored key.
func (f *Front[K, V]) HypervolumeMonteCarlo(ref Point[K], sampleCount int) (float64, error) {
	if f.Empty() {
		return 0, wrapError("Front.HypervolumeMonteCarlo", EmptyContainer, nil)
	}
	if ref.Dim() != f.Dimensions() {
		return 0, wrapError("Front.HypervolumeMonteCarlo", DimensionMismatch, errDimFmt(ref.Dim(), f.Dimensions()))
	}
	ideal, err := f.Ideal()
	if err != nil {
		return 0, err
	}

	box := NewBox(ideal, ref)
	vol := box.Volume()
	if vol == 0 || sampleCount <= 0 {
		return 0, nil
	}

	dim := f.Dimensions()
	lo, hi := box.Min(), box.Max()
	hits := 0
	for s := 0; s < sampleCount; s++ {
		coords := make([]K, dim)
		for i := 0; i < dim; i++ {
			a, b := float64(lo.At(i)), float64(hi.At(i))
			coords[i] = K(a + rand.Float64()*(b-a))
		}
		sample := NewPoint(coords...)
		for k := range f.index.All() {
			if k.WeaklyDominates(sample, f.directions) {
				hits++
				break
			}
		}
	}

	return vol * float64(hits) / float64(sampleCount), nil
}

// transform maps a stored key into the uniform minimization convention
// used internally by hsoVolume: minimized dimensions pass through
// unchanged, maximized dimensions are negated, so every transformed key
// coordinate is <= the correspondingly transformed reference coordinate.
func (f *Front[K, V]) transform(p Point[K]) []float64 {
	out := make([]float64, p.Dim())
	for i := 0; i < p.Dim(); i++ {
		v := float64(p.At(i))
		if i < len(f.directions) && f.directions[i] {
			out[i] = v
		} else {
			out[i] = -v
		}
	}
	return out
}

func (f *Front[K, V]) transformPoint(p Point[K]) []float64 { return f.transform(p) }

// hsoVolume computes the volume of the union of boxes [p, ref] (p <= ref
// componentwise on every point) by sweeping the last dimension and
// recursing on the rest, terminating at the one- and two-dimensional base
// cases.
func hsoVolume(points [][]float64, ref []float64) float64 {
	dim := len(ref)
	switch dim {
	case 0:
		return 0
	case 1:
		return hv1D(points, ref)
	case 2:
		return hv2D(points, ref)
	}

	last := dim - 1
	sorted := append([][]float64(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i][last] < sorted[j][last] })

	var volume float64
	for i, p := range sorted {
		bound := ref[last]
		if i+1 < len(sorted) {
			bound = sorted[i+1][last]
		}
		thickness := bound - p[last]
		if thickness <= 0 {
			continue
		}
		active := make([][]float64, i+1)
		for j := 0; j <= i; j++ {
			active[j] = sorted[j][:last]
		}
		volume += thickness * hsoVolume(active, ref[:last])
	}
	return volume
}

func hv1D(points [][]float64, ref []float64) float64 {
	if len(points) == 0 {
		return 0
	}
	minX := points[0][0]
	for _, p := range points[1:] {
		if p[0] < minX {
			minX = p[0]
		}
	}
	return ref[0] - minX
}

// hv2D computes the 2-D hypervolume of the union of boxes [p, ref] using
// an AVL-tree-maintained skyline: points are inserted one at a time,
// dominated entries are evicted, and the final ascending-x traversal
// yields the staircase whose area is the answer. Keyed by x with y as the
// payload, mirroring the source algorithm's "ordered structure keyed by a
// secondary coordinate" requirement (Design Notes) via
// github.com/emirpasic/gods's AVL tree.
func hv2D(points [][]float64, ref []float64) float64 {
	tree := avltree.NewWith(utils.Float64Comparator)
	for _, p := range points {
		insertSkyline(tree, p[0], p[1])
	}

	keys := tree.Keys()
	vals := tree.Values()
	n := len(keys)

	var area float64
	for i := 0; i < n; i++ {
		x := keys[i].(float64)
		y := vals[i].(float64)
		nextX := ref[0]
		if i+1 < n {
			nextX = keys[i+1].(float64)
		}
		area += (nextX - x) * (ref[1] - y)
	}
	return area
}

// insertSkyline adds (x, y) to the minimization skyline held in tree,
// evicting any entry that the new point weakly dominates and skipping
// the insertion entirely if some existing entry already weakly dominates
// it.
func insertSkyline(tree *avltree.Tree, x, y float64) {
	for _, k := range tree.Keys() {
		kx := k.(float64)
		if kx <= x {
			if vy, _ := tree.Get(k); vy.(float64) <= y {
				return
			}
		}
	}
	for _, k := range tree.Keys() {
		kx := k.(float64)
		if kx >= x {
			if vy, _ := tree.Get(k); vy.(float64) >= y {
				tree.Remove(k)
			}
		}
	}
	tree.Put(x, y)
}
