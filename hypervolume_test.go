// SPDX-License-Identifier: MIT

package pareto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHypervolumeSinglePointMaximize(t *testing.T) {
	t.Parallel()
	f := NewFront[float64, string](FlatVariant)
	f.Insert(NewPoint(5.0, 2.0), "a")

	hv, err := f.Hypervolume(NewPoint(0.0, 0.0))
	require.NoError(t, err)
	require.InDelta(t, 10.0, hv, 1e-9)
}

func TestHypervolumeTwoPointUnionMaximize(t *testing.T) {
	t.Parallel()
	f := NewFront[float64, string](FlatVariant)
	f.Insert(NewPoint(1.0, 4.0), "a")
	f.Insert(NewPoint(3.0, 2.0), "b")

	hv, err := f.Hypervolume(NewPoint(0.0, 0.0))
	require.NoError(t, err)
	// box(a) = 1*4 = 4, box(b) = 3*2 = 6, overlap = 1*2 = 2, union = 8.
	require.InDelta(t, 8.0, hv, 1e-9)
}

func TestHypervolumeMinimize(t *testing.T) {
	t.Parallel()
	f := NewFrontMinimize[float64, string](FlatVariant, true)
	f.Insert(NewPoint(2.0, 3.0), "a")

	hv, err := f.Hypervolume(NewPoint(10.0, 10.0))
	require.NoError(t, err)
	require.InDelta(t, 8.0*7.0, hv, 1e-9)
}

func TestHypervolumeThreeDimensional(t *testing.T) {
	t.Parallel()
	f := NewFront[float64, string](FlatVariant)
	f.Insert(NewPoint(4.0, 4.0, 4.0), "a")

	hv, err := f.Hypervolume(NewPoint(0.0, 0.0, 0.0))
	require.NoError(t, err)
	require.InDelta(t, 64.0, hv, 1e-9)
}

func TestHypervolumeRejectsEmptyFront(t *testing.T) {
	t.Parallel()
	f := NewFront[float64, string](FlatVariant)
	_, err := f.Hypervolume(NewPoint(0.0, 0.0))
	require.Error(t, err)
}

func TestHypervolumeRejectsInvalidReference(t *testing.T) {
	t.Parallel()
	f := NewFront[float64, string](FlatVariant)
	f.Insert(NewPoint(5.0, 5.0), "a")

	_, err := f.Hypervolume(NewPoint(10.0, 0.0))
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ReferencePointInvalid, perr.Kind)
}

func TestHypervolumeMonteCarloApproximatesExact(t *testing.T) {
	t.Parallel()
	f := NewFront[float64, string](FlatVariant)
	f.Insert(NewPoint(5.0, 2.0), "a")

	exact, err := f.Hypervolume(NewPoint(0.0, 0.0))
	require.NoError(t, err)

	approx, err := f.HypervolumeMonteCarlo(NewPoint(0.0, 0.0), 20000)
	require.NoError(t, err)
	// A single point's hypervolume box has no internal boundary to miss,
	// so every sample should land inside it and the estimate is exact.
	require.InDelta(t, exact, approx, 1e-9)
}
