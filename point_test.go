// SPDX-License-Identifier: MIT

package pareto

import "testing"

func TestPointDominates(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		p, q Point[float64]
		d    Directions
		want bool
	}{
		{"maximize both better", NewPoint(2.0, 2.0), NewPoint(1.0, 1.0), AllMaximize(2), true},
		{"maximize one equal one better", NewPoint(2.0, 1.0), NewPoint(1.0, 1.0), AllMaximize(2), true},
		{"maximize equal", NewPoint(1.0, 1.0), NewPoint(1.0, 1.0), AllMaximize(2), false},
		{"maximize worse on one dim", NewPoint(2.0, 0.0), NewPoint(1.0, 1.0), AllMaximize(2), false},
		{"minimize both better", NewPoint(1.0, 1.0), NewPoint(2.0, 2.0), AllMinimize(2), true},
		{"mixed directions", NewPoint(2.0, 1.0), NewPoint(1.0, 2.0), Directions{false, true}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.Dominates(tc.q, tc.d); got != tc.want {
				t.Errorf("Dominates() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPointStronglyDominates(t *testing.T) {
	t.Parallel()
	p := NewPoint(2.0, 2.0)
	q := NewPoint(1.0, 2.0)
	if p.StronglyDominates(q, AllMaximize(2)) {
		t.Errorf("StronglyDominates() = true for a point tied on one dimension")
	}
	q2 := NewPoint(1.0, 1.0)
	if !p.StronglyDominates(q2, AllMaximize(2)) {
		t.Errorf("StronglyDominates() = false, want true")
	}
}

func TestPointWeaklyDominates(t *testing.T) {
	t.Parallel()
	p := NewPoint(2.0, 2.0)
	q := NewPoint(2.0, 2.0)
	if !p.WeaklyDominates(q, AllMaximize(2)) {
		t.Errorf("WeaklyDominates() = false for equal points, want true")
	}
	if p.Dominates(q, AllMaximize(2)) {
		t.Errorf("Dominates() = true for equal points, want false")
	}
}

func TestPointNonDominates(t *testing.T) {
	t.Parallel()
	p := NewPoint(2.0, 1.0)
	q := NewPoint(1.0, 2.0)
	if !p.NonDominates(q, AllMaximize(2)) {
		t.Errorf("NonDominates() = false for mutually non-dominating points")
	}
}

func TestPointArithmetic(t *testing.T) {
	t.Parallel()
	p := NewPoint(1.0, 2.0, 3.0)
	q := NewPoint(4.0, 5.0, 6.0)
	if got := p.Add(q); !got.Equal(NewPoint(5.0, 7.0, 9.0)) {
		t.Errorf("Add() = %v", got)
	}
	if got := q.Sub(p); !got.Equal(NewPoint(3.0, 3.0, 3.0)) {
		t.Errorf("Sub() = %v", got)
	}
	if got := p.MulScalar(2); !got.Equal(NewPoint(2.0, 4.0, 6.0)) {
		t.Errorf("MulScalar() = %v", got)
	}
}

func TestPointDistance(t *testing.T) {
	t.Parallel()
	p := NewPoint(0.0, 0.0)
	q := NewPoint(3.0, 4.0)
	if got := p.Distance(q); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestPointQuadrant(t *testing.T) {
	t.Parallel()
	ref := NewPoint(0, 0, 0)
	testCases := []struct {
		p    Point[int]
		want int
	}{
		{NewPoint(-1, -1, -1), 0},
		{NewPoint(1, -1, -1), 1},
		{NewPoint(-1, 1, -1), 2},
		{NewPoint(1, 1, 1), 7},
	}
	for _, tc := range testCases {
		if got := tc.p.Quadrant(ref); got != tc.want {
			t.Errorf("Quadrant(%v) = %d, want %d", tc.p, got, tc.want)
		}
	}
}

func TestPointCloneIndependence(t *testing.T) {
	t.Parallel()
	p := NewPoint(1, 2, 3)
	clone := p.Clone()
	clone = clone.Set(0, 99)
	if p.At(0) != 1 {
		t.Errorf("mutating a clone affected the original: %v", p)
	}
	if clone.At(0) != 99 {
		t.Errorf("Set() did not take effect on the clone")
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		token   string
		want    bool
		wantErr bool
	}{
		{"min", true, false},
		{"minimization", true, false},
		{"max", false, false},
		{"maximization", false, false},
		{"bogus", false, true},
	}
	for _, tc := range testCases {
		got, err := ParseDirection(tc.token)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tc.token, err, tc.wantErr)
		}
		if err == nil && got != tc.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestPointDominatesDimensionMismatchPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Dominates() with mismatched dimensions did not panic")
		}
	}()
	NewPoint(1.0, 2.0).Dominates(NewPoint(1.0), AllMaximize(2))
}
