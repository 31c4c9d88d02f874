// SPDX-License-Identifier: MIT

package pareto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArchiveInsertSplitsIntoFronts(t *testing.T) {
	t.Parallel()
	// Under minimize: (0,0) dominates everything else, so it alone forms
	// F0; (1,1) is dominated only by (0,0), landing in F1.
	a := NewArchiveMinimize[float64, string](FlatVariant, true, 10)
	require.NoError(t, a.Insert(NewPoint(0.0, 0.0), "best"))
	require.NoError(t, a.Insert(NewPoint(1.0, 1.0), "second"))

	require.Equal(t, 2, a.Size())

	var fronts []*Front[float64, string]
	for f := range a.Fronts() {
		fronts = append(fronts, f)
	}
	require.Len(t, fronts, 2)
	require.Equal(t, 1, fronts[0].Size())
	require.Equal(t, 1, fronts[1].Size())

	v, ok := fronts[0].Find(NewPoint(0.0, 0.0))
	require.True(t, ok)
	require.Equal(t, "best", v)
}

func TestArchiveCapacityPruning(t *testing.T) {
	t.Parallel()
	// Capacity 3: after inserting 4 mutually non-dominated points (all in
	// F0), the archive must evict exactly one to stay within capacity.
	a := NewArchiveMinimize[float64, string](FlatVariant, true, 3)
	points := []Point[float64]{
		NewPoint(0.0, 10.0),
		NewPoint(3.0, 7.0),
		NewPoint(7.0, 3.0),
		NewPoint(10.0, 0.0),
	}
	for i, p := range points {
		require.NoError(t, a.Insert(p, string(rune('a'+i))))
	}
	require.Equal(t, 3, a.Size())
	require.LessOrEqual(t, a.Size(), a.Capacity())
}

func TestArchiveCascadesDisplacedEntriesDeeper(t *testing.T) {
	t.Parallel()
	a := NewArchiveMinimize[float64, string](FlatVariant, true, 10)
	// Insert in worst-to-best order: every new arrival dominates
	// everything already in F0, pushing the old F0 down one level each
	// time.
	require.NoError(t, a.Insert(NewPoint(3.0, 3.0), "c"))
	require.NoError(t, a.Insert(NewPoint(2.0, 2.0), "b"))
	require.NoError(t, a.Insert(NewPoint(1.0, 1.0), "a"))

	require.Equal(t, 3, a.Size())

	var sizes []int
	for f := range a.Fronts() {
		sizes = append(sizes, f.Size())
	}
	require.Equal(t, []int{1, 1, 1}, sizes)

	front0 := a.Front0()
	v, ok := front0.Find(NewPoint(1.0, 1.0))
	require.True(t, ok)
	require.Equal(t, "a", v)
}

func TestArchiveEraseRebuildsDeeperFronts(t *testing.T) {
	t.Parallel()
	a := NewArchiveMinimize[float64, string](FlatVariant, true, 10)
	require.NoError(t, a.Insert(NewPoint(1.0, 1.0), "a"))
	require.NoError(t, a.Insert(NewPoint(2.0, 2.0), "b"))
	require.NoError(t, a.Insert(NewPoint(3.0, 3.0), "c"))

	// F0={a}, F1={b}, F2={c}. Erasing a should promote b into F0 and c
	// into F1.
	require.Equal(t, 1, a.Erase(NewPoint(1.0, 1.0)))

	front0 := a.Front0()
	_, ok := front0.Find(NewPoint(2.0, 2.0))
	require.True(t, ok, "erasing the top front did not promote the next one")

	idx, _ := a.FindFront(NewPoint(3.0, 3.0))
	require.Equal(t, 1, idx)
}

func TestArchiveFindFront(t *testing.T) {
	t.Parallel()
	a := NewArchiveMinimize[float64, string](FlatVariant, true, 10)
	require.NoError(t, a.Insert(NewPoint(1.0, 1.0), "a"))

	idx, ok := a.FindFront(NewPoint(1.0, 1.0))
	require.True(t, ok)
	require.Equal(t, 0, idx)

	// A point dominated by the stored entry belongs one level deeper.
	idx, ok = a.FindFront(NewPoint(5.0, 5.0))
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestArchiveInsertRejectsZeroCapacity(t *testing.T) {
	t.Parallel()
	a := NewArchiveMinimize[float64, string](FlatVariant, true, 0)
	err := a.Insert(NewPoint(1.0, 1.0), "a")
	require.Error(t, err)
}

func TestArchiveFrontsAreIndependentSnapshots(t *testing.T) {
	t.Parallel()
	a := NewArchiveMinimize[float64, string](FlatVariant, true, 10)
	require.NoError(t, a.Insert(NewPoint(1.0, 1.0), "a"))

	snap := a.Front0()
	snap.Insert(NewPoint(0.0, 0.0), "mutated")

	v, ok := a.Find(NewPoint(0.0, 0.0))
	require.False(t, ok, "mutating a Fronts() snapshot leaked back into the archive")
	_ = v
}
