// SPDX-License-Identifier: MIT

package pareto

import "testing"

func TestBoxNormalizesCorners(t *testing.T) {
	t.Parallel()
	b := NewBox(NewPoint(5.0, -1.0), NewPoint(1.0, 3.0))
	if !b.Min().Equal(NewPoint(1.0, -1.0)) {
		t.Errorf("Min() = %v", b.Min())
	}
	if !b.Max().Equal(NewPoint(5.0, 3.0)) {
		t.Errorf("Max() = %v", b.Max())
	}
}

func TestBoxContains(t *testing.T) {
	t.Parallel()
	b := NewBox(NewPoint(0.0, 0.0), NewPoint(10.0, 10.0))
	testCases := []struct {
		p    Point[float64]
		want bool
	}{
		{NewPoint(5.0, 5.0), true},
		{NewPoint(0.0, 0.0), true},
		{NewPoint(10.0, 10.0), true},
		{NewPoint(11.0, 5.0), false},
		{NewPoint(-1.0, 5.0), false},
	}
	for _, tc := range testCases {
		if got := b.Contains(tc.p); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestBoxIntersectsDisjoint(t *testing.T) {
	t.Parallel()
	a := NewBox(NewPoint(0.0, 0.0), NewPoint(5.0, 5.0))
	b := NewBox(NewPoint(4.0, 4.0), NewPoint(10.0, 10.0))
	c := NewBox(NewPoint(6.0, 6.0), NewPoint(10.0, 10.0))

	if !a.Intersects(b) {
		t.Errorf("Intersects() = false for overlapping boxes")
	}
	if a.Intersects(c) {
		t.Errorf("Intersects() = true for disjoint boxes")
	}
	if !a.Disjoint(c) {
		t.Errorf("Disjoint() = false for disjoint boxes")
	}
}

func TestBoxVolume(t *testing.T) {
	t.Parallel()
	b := NewBox(NewPoint(0.0, 0.0, 0.0), NewPoint(2.0, 3.0, 4.0))
	if got := b.Volume(); got != 24 {
		t.Errorf("Volume() = %v, want 24", got)
	}
}

func TestBoxOverlapVolume(t *testing.T) {
	t.Parallel()
	a := NewBox(NewPoint(0.0, 0.0), NewPoint(4.0, 4.0))
	b := NewBox(NewPoint(2.0, 2.0), NewPoint(6.0, 6.0))
	if got := a.OverlapVolume(b); got != 4 {
		t.Errorf("OverlapVolume() = %v, want 4", got)
	}

	c := NewBox(NewPoint(10.0, 10.0), NewPoint(12.0, 12.0))
	if got := a.OverlapVolume(c); got != 0 {
		t.Errorf("OverlapVolume() of disjoint boxes = %v, want 0", got)
	}
}

func TestBoxStretch(t *testing.T) {
	t.Parallel()
	b := NewBox(NewPoint(0.0, 0.0), NewPoint(1.0, 1.0))
	s := b.Stretch(NewPoint(5.0, -5.0))
	if !s.Min().Equal(NewPoint(0.0, -5.0)) || !s.Max().Equal(NewPoint(5.0, 1.0)) {
		t.Errorf("Stretch() = [%v, %v]", s.Min(), s.Max())
	}
}

func TestBoxEnlargement(t *testing.T) {
	t.Parallel()
	b := NewBox(NewPoint(0.0, 0.0), NewPoint(2.0, 2.0))
	if got := b.Enlargement(NewPoint(1.0, 1.0)); got != 0 {
		t.Errorf("Enlargement() of an interior point = %v, want 0", got)
	}
	if got := b.Enlargement(NewPoint(4.0, 2.0)); got != 4 {
		t.Errorf("Enlargement() = %v, want 4", got)
	}
}

func TestBoxDistance(t *testing.T) {
	t.Parallel()
	b := NewBox(NewPoint(0.0, 0.0), NewPoint(1.0, 1.0))
	if got := b.Distance(NewPoint(0.5, 0.5)); got != 0 {
		t.Errorf("Distance() inside box = %v, want 0", got)
	}
	if got := b.Distance(NewPoint(4.0, 1.0)); got != 3 {
		t.Errorf("Distance() = %v, want 3", got)
	}
}
