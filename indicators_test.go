// SPDX-License-Identifier: MIT

package pareto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildFront(t *testing.T, minimize bool, pts ...[2]float64) *Front[float64, int] {
	t.Helper()
	f := NewFrontMinimize[float64, int](FlatVariant, minimize)
	for i, p := range pts {
		_, _, ok, err := f.Insert(NewPoint(p[0], p[1]), i)
		require.NoError(t, err)
		require.True(t, ok, "point %v was rejected from its own antichain", p)
	}
	return f
}

func TestCoverageIsDirectional(t *testing.T) {
	t.Parallel()
	// Under minimize, a dominates b entirely; b dominates none of a.
	a := buildFront(t, true, [2]float64{1, 1})
	b := buildFront(t, true, [2]float64{5, 6}, [2]float64{6, 5})

	require.Equal(t, 1.0, a.Coverage(b))
	require.Equal(t, 0.0, b.Coverage(a))
}

func TestCoverageRatioNeitherCoversIsOne(t *testing.T) {
	t.Parallel()
	a := buildFront(t, true, [2]float64{1, 5})
	b := buildFront(t, true, [2]float64{5, 1})
	require.Equal(t, 1.0, a.CoverageRatio(b))
}

func TestGDZeroWhenFrontsMatch(t *testing.T) {
	t.Parallel()
	a := buildFront(t, true, [2]float64{1, 5}, [2]float64{5, 1})
	b := buildFront(t, true, [2]float64{1, 5}, [2]float64{5, 1})
	require.InDelta(t, 0.0, a.GD(b), 1e-9)
	require.InDelta(t, 0.0, a.IGD(b), 1e-9)
}

func TestGDPositiveWhenFrontsDiffer(t *testing.T) {
	t.Parallel()
	a := buildFront(t, true, [2]float64{0, 0})
	b := buildFront(t, true, [2]float64{3, 4})
	require.InDelta(t, 5.0, a.GD(b), 1e-9)
	require.InDelta(t, 5.0, a.IGD(b), 1e-9)
}

func TestIGDPlusIsZeroWhenSelfWeaklyDominatesReference(t *testing.T) {
	t.Parallel()
	self := buildFront(t, true, [2]float64{1, 1})
	ref := buildFront(t, true, [2]float64{5, 5})
	require.InDelta(t, 0.0, self.IGDPlus(ref), 1e-9)
}

func TestIGDPlusDiffersFromIGDWhenSelfIsBetter(t *testing.T) {
	t.Parallel()
	// self is strictly better than ref on both dimensions under minimize:
	// IGD+ treats the gap as 0, plain IGD does not.
	self := buildFront(t, true, [2]float64{1, 1})
	ref := buildFront(t, true, [2]float64{5, 5})
	require.Greater(t, self.IGD(ref), self.IGDPlus(ref))
}

func TestHausdorffIsSymmetricMax(t *testing.T) {
	t.Parallel()
	a := buildFront(t, true, [2]float64{0, 0})
	b := buildFront(t, true, [2]float64{3, 4})
	require.InDelta(t, math.Max(a.GD(b), a.IGD(b)), a.Hausdorff(b), 1e-9)
}

func TestUniformityZeroForEvenlySpacedPoints(t *testing.T) {
	t.Parallel()
	f := buildFront(t, true, [2]float64{0, 10}, [2]float64{5, 5}, [2]float64{10, 0})
	require.InDelta(t, 0.0, f.Uniformity(), 1e-6)
}

func TestAverageDistanceTwoPoints(t *testing.T) {
	t.Parallel()
	f := buildFront(t, true, [2]float64{0, 4}, [2]float64{3, 0})
	require.InDelta(t, 5.0, f.AverageDistance(), 1e-9)
}

func TestCrowdingDistanceBoundaryIsInfinite(t *testing.T) {
	t.Parallel()
	f := buildFront(t, true, [2]float64{0, 10}, [2]float64{5, 5}, [2]float64{10, 0})
	require.True(t, math.IsInf(f.CrowdingDistance(NewPoint(0.0, 10.0)), 1))
	require.True(t, math.IsInf(f.CrowdingDistance(NewPoint(10.0, 0.0)), 1))
	require.False(t, math.IsInf(f.CrowdingDistance(NewPoint(5.0, 5.0)), 1))
}

func TestAverageCrowdingDistanceExcludesInfinities(t *testing.T) {
	t.Parallel()
	f := buildFront(t, true, [2]float64{0, 10}, [2]float64{5, 5}, [2]float64{10, 0})
	avg := f.AverageCrowdingDistance()
	require.False(t, math.IsInf(avg, 1))
}

func TestDirectConflictAndNormalizedDirectConflict(t *testing.T) {
	t.Parallel()
	f := buildFront(t, true, [2]float64{0, 10}, [2]float64{10, 0})
	// |0-10| + |10-0| = 20.
	require.InDelta(t, 20.0, f.DirectConflict(0, 1), 1e-9)
	// range on each dim is 10, normalizer is 100.
	require.InDelta(t, 0.2, f.NormalizedDirectConflict(0, 1), 1e-9)
}

func TestConflictIsZeroForPerfectlyCorrelatedDimensions(t *testing.T) {
	t.Parallel()
	// Opposing directions keep (0,0), (5,5), (10,10) a valid antichain
	// while the raw coordinates stay perfectly positively correlated,
	// which is what Conflict's rank correlation actually measures.
	f := NewFrontDirections[float64, int](FlatVariant, Directions{true, false})
	for i, p := range [][2]float64{{0, 0}, {5, 5}, {10, 10}} {
		_, _, ok, err := f.Insert(NewPoint(p[0], p[1]), i)
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.InDelta(t, 0.0, f.Conflict(0, 1), 1e-9)
}

func TestConflictIsSymmetric(t *testing.T) {
	t.Parallel()
	f := buildFront(t, true, [2]float64{0, 10}, [2]float64{4, 6}, [2]float64{10, 0})
	require.InDelta(t, f.Conflict(0, 1), f.Conflict(1, 0), 1e-9)
	require.InDelta(t, f.NormalizedConflict(0, 1), f.NormalizedConflict(1, 0), 1e-9)
}

func TestMaxminConflictAntisymmetric(t *testing.T) {
	t.Parallel()
	f := buildFront(t, true, [2]float64{0, 8}, [2]float64{10, 2})
	require.InDelta(t, -f.MaxminConflict(1, 0), f.MaxminConflict(0, 1), 1e-9)
}
