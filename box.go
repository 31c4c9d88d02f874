// SPDX-License-Identifier: MIT

package pareto

import "math"

// Box is an axis-aligned rectangle [Min, Max] in R^M. Corners are
// normalized on construction so that Min[i] <= Max[i] for every i.
type Box[K Number] struct {
	min, max Point[K]
}

// NewBox builds a Box from two corners, normalizing them so min <= max on
// every dimension.
func NewBox[K Number](a, b Point[K]) Box[K] {
	checkSameDim(a, b)
	lo := make([]K, a.Dim())
	hi := make([]K, a.Dim())
	for i := 0; i < a.Dim(); i++ {
		x, y := a.At(i), b.At(i)
		if x <= y {
			lo[i], hi[i] = x, y
		} else {
			lo[i], hi[i] = y, x
		}
	}
	return Box[K]{min: Point[K]{coords: lo}, max: Point[K]{coords: hi}}
}

// BoxFromPoint returns the degenerate box whose min and max both equal p.
func BoxFromPoint[K Number](p Point[K]) Box[K] {
	return Box[K]{min: p.Clone(), max: p.Clone()}
}

// Min returns the box's minimum corner.
func (b Box[K]) Min() Point[K] { return b.min }

// Max returns the box's maximum corner.
func (b Box[K]) Max() Point[K] { return b.max }

// Dim returns the box's dimension.
func (b Box[K]) Dim() int { return b.min.Dim() }

// Contains reports whether p lies within the closed box b.
func (b Box[K]) Contains(p Point[K]) bool {
	checkSameDim(b.min, p)
	for i := 0; i < b.Dim(); i++ {
		if p.At(i) < b.min.At(i) || p.At(i) > b.max.At(i) {
			return false
		}
	}
	return true
}

// ContainsBox reports whether other is entirely contained in b.
func (b Box[K]) ContainsBox(other Box[K]) bool {
	checkSameDim(b.min, other.min)
	for i := 0; i < b.Dim(); i++ {
		if other.min.At(i) < b.min.At(i) || other.max.At(i) > b.max.At(i) {
			return false
		}
	}
	return true
}

// Intersects reports whether b and other share at least one point.
func (b Box[K]) Intersects(other Box[K]) bool {
	checkSameDim(b.min, other.min)
	for i := 0; i < b.Dim(); i++ {
		if b.max.At(i) < other.min.At(i) || other.max.At(i) < b.min.At(i) {
			return false
		}
	}
	return true
}

// Disjoint reports whether b and other share no point.
func (b Box[K]) Disjoint(other Box[K]) bool {
	return !b.Intersects(other)
}

// Stretch returns the smallest box containing both b and p.
func (b Box[K]) Stretch(p Point[K]) Box[K] {
	checkSameDim(b.min, p)
	lo := make([]K, b.Dim())
	hi := make([]K, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		lo[i] = min(b.min.At(i), p.At(i))
		hi[i] = max(b.max.At(i), p.At(i))
	}
	return Box[K]{min: Point[K]{coords: lo}, max: Point[K]{coords: hi}}
}

// StretchBox returns the smallest box containing both b and other.
func (b Box[K]) StretchBox(other Box[K]) Box[K] {
	checkSameDim(b.min, other.min)
	lo := make([]K, b.Dim())
	hi := make([]K, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		lo[i] = min(b.min.At(i), other.min.At(i))
		hi[i] = max(b.max.At(i), other.max.At(i))
	}
	return Box[K]{min: Point[K]{coords: lo}, max: Point[K]{coords: hi}}
}

// Volume returns the Lebesgue measure (product of side lengths) of b.
func (b Box[K]) Volume() float64 {
	vol := 1.0
	for i := 0; i < b.Dim(); i++ {
		vol *= float64(b.max.At(i)) - float64(b.min.At(i))
	}
	return vol
}

// OverlapVolume returns the volume of the intersection of b and other, or 0
// if they are disjoint.
func (b Box[K]) OverlapVolume(other Box[K]) float64 {
	checkSameDim(b.min, other.min)
	vol := 1.0
	for i := 0; i < b.Dim(); i++ {
		lo := max(b.min.At(i), other.min.At(i))
		hi := min(b.max.At(i), other.max.At(i))
		if hi < lo {
			return 0
		}
		vol *= float64(hi) - float64(lo)
	}
	return vol
}

// Enlargement returns how much b's volume would grow to additionally
// contain p, i.e. Stretch(p).Volume() - b.Volume(). Used by R-tree/R*-tree
// subtree selection.
func (b Box[K]) Enlargement(p Point[K]) float64 {
	return b.Stretch(p).Volume() - b.Volume()
}

// EnlargementBox is Enlargement generalized to another box.
func (b Box[K]) EnlargementBox(other Box[K]) float64 {
	return b.StretchBox(other).Volume() - b.Volume()
}

// Perimeter returns the sum of edge lengths (half-perimeter for 2D), used
// by the R*-tree split heuristic to rank candidate axes.
func (b Box[K]) Perimeter() float64 {
	var p float64
	for i := 0; i < b.Dim(); i++ {
		p += float64(b.max.At(i)) - float64(b.min.At(i))
	}
	return p
}

// Center returns the box's geometric center.
func (b Box[K]) Center() []float64 {
	c := make([]float64, b.Dim())
	for i := range c {
		c[i] = (float64(b.min.At(i)) + float64(b.max.At(i))) / 2
	}
	return c
}

// Distance returns the Euclidean distance from p to the nearest point of
// b: 0 if p is inside b, otherwise the distance to the nearest face.
func (b Box[K]) Distance(p Point[K]) float64 {
	checkSameDim(b.min, p)
	var sum float64
	for i := 0; i < b.Dim(); i++ {
		v := float64(p.At(i))
		lo := float64(b.min.At(i))
		hi := float64(b.max.At(i))
		var d float64
		switch {
		case v < lo:
			d = lo - v
		case v > hi:
			d = v - hi
		}
		sum += d * d
	}
	return math.Sqrt(sum)
}
