// SPDX-License-Identifier: MIT

package pareto

import (
	"cmp"
	"fmt"
	"math"
)

// Number is the set of coordinate types a [Point] may hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Point is an ordered sequence of coordinates in R^M. The dimension M is
// determined at runtime, by the length of the slice a Point is built from;
// every Point stored in the same container must share that dimension.
//
// Point has value semantics: copying a Point copies its backing slice's
// header only, so callers that mutate coordinates in place must clone
// first via [Point.Clone].
type Point[K Number] struct {
	coords []K
}

// NewPoint builds a Point from the given coordinates. The slice is used
// directly; callers that may mutate it afterwards should copy first.
func NewPoint[K Number](coords ...K) Point[K] {
	return Point[K]{coords: coords}
}

// Dim returns the number of coordinates.
func (p Point[K]) Dim() int { return len(p.coords) }

// At returns the i-th coordinate. It panics if i is out of range.
func (p Point[K]) At(i int) K { return p.coords[i] }

// Set returns a copy of p with the i-th coordinate replaced by v.
func (p Point[K]) Set(i int, v K) Point[K] {
	q := p.Clone()
	q.coords[i] = v
	return q
}

// Coordinates returns the coordinates as a new slice, safe to mutate.
func (p Point[K]) Coordinates() []K {
	return append([]K(nil), p.coords...)
}

// Clone returns a Point with its own backing slice.
func (p Point[K]) Clone() Point[K] {
	return Point[K]{coords: append([]K(nil), p.coords...)}
}

// Equal reports whether p and q have identical coordinates.
func (p Point[K]) Equal(q Point[K]) bool {
	if len(p.coords) != len(q.coords) {
		return false
	}
	for i := range p.coords {
		if p.coords[i] != q.coords[i] {
			return false
		}
	}
	return true
}

// Less reports whether p sorts before q under lexicographic order on
// coordinates. Points of differing dimension are not comparable and Less
// panics in that case.
func (p Point[K]) Less(q Point[K]) bool {
	checkSameDim(p, q)
	for i := range p.coords {
		if p.coords[i] != q.coords[i] {
			return p.coords[i] < q.coords[i]
		}
	}
	return false
}

func checkSameDim[K Number](p, q Point[K]) {
	if len(p.coords) != len(q.coords) {
		panic(fmt.Sprintf("pareto: points have differing dimensions %d and %d", len(p.coords), len(q.coords)))
	}
}

// Add returns the coordinate-wise sum of p and q.
func (p Point[K]) Add(q Point[K]) Point[K] {
	return p.zipWith(q, func(a, b K) K { return a + b })
}

// Sub returns the coordinate-wise difference p - q.
func (p Point[K]) Sub(q Point[K]) Point[K] {
	return p.zipWith(q, func(a, b K) K { return a - b })
}

// Mul returns the coordinate-wise product of p and q.
func (p Point[K]) Mul(q Point[K]) Point[K] {
	return p.zipWith(q, func(a, b K) K { return a * b })
}

// Div returns the coordinate-wise quotient p / q.
func (p Point[K]) Div(q Point[K]) Point[K] {
	return p.zipWith(q, func(a, b K) K { return a / b })
}

func (p Point[K]) zipWith(q Point[K], f func(a, b K) K) Point[K] {
	checkSameDim(p, q)
	out := make([]K, len(p.coords))
	for i := range p.coords {
		out[i] = f(p.coords[i], q.coords[i])
	}
	return Point[K]{coords: out}
}

// AddScalar returns p with s added to every coordinate.
func (p Point[K]) AddScalar(s K) Point[K] { return p.mapScalar(func(a K) K { return a + s }) }

// SubScalar returns p with s subtracted from every coordinate.
func (p Point[K]) SubScalar(s K) Point[K] { return p.mapScalar(func(a K) K { return a - s }) }

// MulScalar returns p scaled by s.
func (p Point[K]) MulScalar(s K) Point[K] { return p.mapScalar(func(a K) K { return a * s }) }

// DivScalar returns p with every coordinate divided by s.
func (p Point[K]) DivScalar(s K) Point[K] { return p.mapScalar(func(a K) K { return a / s }) }

func (p Point[K]) mapScalar(f func(K) K) Point[K] {
	out := make([]K, len(p.coords))
	for i, v := range p.coords {
		out[i] = f(v)
	}
	return Point[K]{coords: out}
}

// Distance returns the Euclidean distance between p and q.
func (p Point[K]) Distance(q Point[K]) float64 {
	return math.Sqrt(p.SquaredDistance(q))
}

// SquaredDistance returns the squared Euclidean distance between p and q,
// avoiding the sqrt when only relative ordering matters.
func (p Point[K]) SquaredDistance(q Point[K]) float64 {
	checkSameDim(p, q)
	var sum float64
	for i := range p.coords {
		d := float64(p.coords[i]) - float64(q.coords[i])
		sum += d * d
	}
	return sum
}

// Quadrant returns an integer q in [0, 2^Dim) whose bit i is set iff
// p's i-th coordinate is >= the reference's. It is used as the child
// index into a point quad-tree node's orthant map.
func (p Point[K]) Quadrant(reference Point[K]) int {
	checkSameDim(p, reference)
	q := 0
	for i := range p.coords {
		if p.coords[i] >= reference.coords[i] {
			q |= 1 << uint(i)
		}
	}
	return q
}

// Directions is a per-dimension optimization sense: true means "minimize
// this dimension is better", false means "maximize".
type Directions []bool

// AllMaximize returns a Directions of length dim where every dimension is
// maximized.
func AllMaximize(dim int) Directions {
	return make(Directions, dim)
}

// AllMinimize returns a Directions of length dim where every dimension is
// minimized.
func AllMinimize(dim int) Directions {
	d := make(Directions, dim)
	for i := range d {
		d[i] = true
	}
	return d
}

// ParseDirection maps the recognized textual tokens ("min", "minimization",
// "max", "maximization", case-sensitive) to a boolean direction.
func ParseDirection(token string) (minimize bool, err error) {
	switch token {
	case "min", "minimization":
		return true, nil
	case "max", "maximization":
		return false, nil
	default:
		return false, wrapError("ParseDirection", InvalidDirectionToken, fmt.Errorf("unrecognized token %q", token))
	}
}

// ParseDirections maps a slice of textual tokens to a Directions vector.
func ParseDirections(tokens []string) (Directions, error) {
	d := make(Directions, len(tokens))
	for i, tok := range tokens {
		minimize, err := ParseDirection(tok)
		if err != nil {
			return nil, err
		}
		d[i] = minimize
	}
	return d, nil
}

// betterOrEqual reports whether a is at least as good as b on one
// dimension under the given direction.
func betterOrEqual[K Number](a, b K, minimize bool) bool {
	if minimize {
		return a <= b
	}
	return a >= b
}

func strictlyBetter[K Number](a, b K, minimize bool) bool {
	if minimize {
		return a < b
	}
	return a > b
}

// Dominates reports whether p dominates q under directions d: p must be at
// least as good as q on every dimension, and strictly better on at least
// one. Dimensions beyond len(d) default to maximize.
func (p Point[K]) Dominates(q Point[K], d Directions) bool {
	checkSameDim(p, q)
	betterSomewhere := false
	for i := range p.coords {
		minimize := i < len(d) && d[i]
		if !betterOrEqual(p.coords[i], q.coords[i], minimize) {
			return false
		}
		if strictlyBetter(p.coords[i], q.coords[i], minimize) {
			betterSomewhere = true
		}
	}
	return betterSomewhere
}

// StronglyDominates reports whether p is strictly better than q on every
// dimension under directions d.
func (p Point[K]) StronglyDominates(q Point[K], d Directions) bool {
	checkSameDim(p, q)
	for i := range p.coords {
		minimize := i < len(d) && d[i]
		if !strictlyBetter(p.coords[i], q.coords[i], minimize) {
			return false
		}
	}
	return true
}

// NonDominates reports whether neither p nor q dominates the other under d.
func (p Point[K]) NonDominates(q Point[K], d Directions) bool {
	return !p.Dominates(q, d) && !q.Dominates(p, d)
}

// WeaklyDominates reports whether p is at least as good as q on every
// dimension under d, with no requirement of strict improvement anywhere
// (unlike Dominates). Used by coverage-style indicators.
func (p Point[K]) WeaklyDominates(q Point[K], d Directions) bool {
	checkSameDim(p, q)
	for i := range p.coords {
		minimize := i < len(d) && d[i]
		if !betterOrEqual(p.coords[i], q.coords[i], minimize) {
			return false
		}
	}
	return true
}

// compareOrdered is cmp.Compare over a Number coordinate type; nothing in
// this package calls it.
func compareOrdered[K Number](a, b K) int {
	return cmp.Compare(a, b)
}
