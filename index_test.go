// SPDX-License-Identifier: MIT

package pareto

import (
	"math/rand/v2"
	"testing"
)

// indexVariants lists every concrete Index implementation under the shared
// contract, the way barttable_test.go/fasttable_test.go/litetable_test.go
// run the same scenarios across the table's backing implementations.
var indexVariants = []struct {
	name    string
	variant VariantTag
}{
	{"Flat", FlatVariant},
	{"KDTree", KDTreeVariant},
	{"QuadTree", QuadTreeVariant},
	{"RTree", RTreeVariant},
	{"RStarTree", RStarTreeVariant},
}

func forEachVariant(t *testing.T, f func(t *testing.T, idx Index[float64, string])) {
	for _, v := range indexVariants {
		v := v
		t.Run(v.name, func(t *testing.T) {
			t.Parallel()
			f(t, newIndex[float64, string](v.variant))
		})
	}
}

func TestIndexInsertFindErase(t *testing.T) {
	t.Parallel()
	forEachVariant(t, func(t *testing.T, idx Index[float64, string]) {
		p := NewPoint(1.0, 2.0)
		idx.Insert(p, "a")

		got, ok := idx.Find(p)
		if !ok || got != "a" {
			t.Fatalf("Find() = (%q, %v), want (\"a\", true)", got, ok)
		}
		if idx.Size() != 1 {
			t.Errorf("Size() = %d, want 1", idx.Size())
		}

		if n := idx.Erase(p); n != 1 {
			t.Errorf("Erase() = %d, want 1", n)
		}
		if !idx.Empty() {
			t.Errorf("Empty() = false after erasing the only entry")
		}
		if n := idx.Erase(p); n != 0 {
			t.Errorf("Erase() on an absent key = %d, want 0", n)
		}
	})
}

func TestIndexDimensionLocking(t *testing.T) {
	t.Parallel()
	forEachVariant(t, func(t *testing.T, idx Index[float64, string]) {
		idx.Insert(NewPoint(1.0, 2.0), "a")
		if idx.Dimensions() != 2 {
			t.Fatalf("Dimensions() = %d, want 2", idx.Dimensions())
		}

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Insert() with a mismatched dimension did not panic")
			}
		}()
		idx.Insert(NewPoint(1.0, 2.0, 3.0), "b")
	})
}

func TestIndexAllVisitsEveryEntry(t *testing.T) {
	t.Parallel()
	points := []Point[float64]{
		NewPoint(0.0, 0.0), NewPoint(1.0, 1.0), NewPoint(2.0, 2.0), NewPoint(3.0, -1.0),
	}
	forEachVariant(t, func(t *testing.T, idx Index[float64, string]) {
		for i, p := range points {
			idx.Insert(p, string(rune('a'+i)))
		}
		seen := map[string]bool{}
		for _, v := range idx.All() {
			seen[v] = true
		}
		if len(seen) != len(points) {
			t.Errorf("All() visited %d distinct values, want %d", len(seen), len(points))
		}
	})
}

func TestIndexFindWithinAndDisjoint(t *testing.T) {
	t.Parallel()
	forEachVariant(t, func(t *testing.T, idx Index[float64, string]) {
		idx.Insert(NewPoint(1.0, 1.0), "in")
		idx.Insert(NewPoint(9.0, 9.0), "out")

		lo, hi := NewPoint(0.0, 0.0), NewPoint(5.0, 5.0)

		within := map[string]bool{}
		for _, v := range idx.FindWithin(lo, hi) {
			within[v] = true
		}
		if !within["in"] || within["out"] {
			t.Errorf("FindWithin() = %v, want only \"in\"", within)
		}

		disjoint := map[string]bool{}
		for _, v := range idx.FindDisjoint(lo, hi) {
			disjoint[v] = true
		}
		if disjoint["in"] || !disjoint["out"] {
			t.Errorf("FindDisjoint() = %v, want only \"out\"", disjoint)
		}
	})
}

func TestIndexFindNearestIsClosestFirst(t *testing.T) {
	t.Parallel()
	forEachVariant(t, func(t *testing.T, idx Index[float64, string]) {
		idx.Insert(NewPoint(0.0, 0.0), "origin")
		idx.Insert(NewPoint(10.0, 10.0), "far")
		idx.Insert(NewPoint(1.0, 1.0), "near")

		var first string
		for _, v := range idx.FindNearest(NewPoint(0.0, 0.0), 1) {
			first = v
			break
		}
		if first != "origin" {
			t.Errorf("FindNearest(k=1) first = %q, want \"origin\"", first)
		}
	})
}

func TestIndexMinMaxElement(t *testing.T) {
	t.Parallel()
	forEachVariant(t, func(t *testing.T, idx Index[float64, string]) {
		idx.Insert(NewPoint(3.0, 1.0), "a")
		idx.Insert(NewPoint(1.0, 9.0), "b")
		idx.Insert(NewPoint(5.0, 5.0), "c")

		maxP, maxV, ok := idx.MaxElement(0)
		if !ok || maxV != "c" || maxP.At(0) != 5 {
			t.Errorf("MaxElement(0) = (%v, %q), want (5, \"c\")", maxP, maxV)
		}
		minP, minV, ok := idx.MinElement(1)
		if !ok || minV != "a" || minP.At(1) != 1 {
			t.Errorf("MinElement(1) = (%v, %q), want (1, \"a\")", minP, minV)
		}
	})
}

func TestIndexBoundingBox(t *testing.T) {
	t.Parallel()
	forEachVariant(t, func(t *testing.T, idx Index[float64, string]) {
		if _, ok := idx.BoundingBox(); ok {
			t.Errorf("BoundingBox() on an empty index reported ok")
		}
		idx.Insert(NewPoint(1.0, 5.0), "a")
		idx.Insert(NewPoint(5.0, 1.0), "b")
		box, ok := idx.BoundingBox()
		if !ok {
			t.Fatalf("BoundingBox() reported not ok with entries present")
		}
		if !box.Min().Equal(NewPoint(1.0, 1.0)) || !box.Max().Equal(NewPoint(5.0, 5.0)) {
			t.Errorf("BoundingBox() = [%v, %v]", box.Min(), box.Max())
		}
	})
}

func TestIndexClear(t *testing.T) {
	t.Parallel()
	forEachVariant(t, func(t *testing.T, idx Index[float64, string]) {
		idx.Insert(NewPoint(1.0, 2.0), "a")
		idx.Clear()
		if !idx.Empty() || idx.Size() != 0 {
			t.Errorf("Clear() left Size()=%d Empty()=%v", idx.Size(), idx.Empty())
		}
		if idx.Dimensions() != 0 {
			t.Errorf("Clear() did not reset the locked dimension, got %d", idx.Dimensions())
		}
	})
}

// TestIndexRandomInsertEraseInvariant mirrors the kd-tree erase invariant
// scenario: insert a batch of random points, erase half of them, and check
// every surviving point is still reachable and every erased one is gone.
func TestIndexRandomInsertEraseInvariant(t *testing.T) {
	t.Parallel()
	forEachVariant(t, func(t *testing.T, idx Index[float64, string]) {
		rng := rand.New(rand.NewPCG(1, 2))
		const n = 1000
		points := make([]Point[float64], n)
		for i := range points {
			points[i] = NewPoint(rng.Float64()*100, rng.Float64()*100, rng.Float64()*100)
			idx.Insert(points[i], "v")
		}
		for i := 0; i < n/2; i++ {
			idx.Erase(points[i])
		}
		if idx.Size() != n-n/2 {
			t.Fatalf("Size() = %d after erasing half, want %d", idx.Size(), n-n/2)
		}
		for i := 0; i < n/2; i++ {
			if _, ok := idx.Find(points[i]); ok {
				t.Errorf("Find() found an erased point %v", points[i])
			}
		}
		for i := n / 2; i < n; i++ {
			if _, ok := idx.Find(points[i]); !ok {
				t.Errorf("Find() missed a surviving point %v", points[i])
			}
		}
	})
}

func TestMergeCombinesTwoIndexes(t *testing.T) {
	t.Parallel()
	dst := NewFlat[float64, string]()
	src := NewFlat[float64, string]()
	dst.Insert(NewPoint(1.0, 1.0), "a")
	src.Insert(NewPoint(2.0, 2.0), "b")

	Merge[float64, string](dst, src)

	if dst.Size() != 2 {
		t.Errorf("Size() after Merge = %d, want 2", dst.Size())
	}
	if _, ok := dst.Find(NewPoint(2.0, 2.0)); !ok {
		t.Errorf("Merge() did not copy src's entry into dst")
	}
}
