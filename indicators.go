// SPDX-License-Identifier: MIT

package pareto

import "math"

// Coverage returns the fraction of other's keys that are weakly
// dominated by some key of self.
func (f *Front[K, V]) Coverage(other *Front[K, V]) float64 {
	if other.Empty() {
		return 0
	}
	covered := 0
	total := 0
	for q := range other.index.All() {
		total++
		for p := range f.index.All() {
			if p.WeaklyDominates(q, f.directions) {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(total)
}

// CoverageRatio is Coverage(self, other) / Coverage(other, self). When the
// denominator is 0, the ratio is defined as 1 if the numerator is also 0
// (neither front covers the other, treated as a tie), else +Inf.
func (f *Front[K, V]) CoverageRatio(other *Front[K, V]) float64 {
	num := f.Coverage(other)
	den := other.Coverage(f)
	if den == 0 {
		if num == 0 {
			return 1
		}
		return math.Inf(1)
	}
	return num / den
}

// nearestDistance returns the minimum Euclidean distance from p to any
// key in idx.
func nearestDistance[K Number, V any](p Point[K], idx Index[K, V]) float64 {
	best := math.Inf(1)
	for q := range idx.All() {
		if d := p.Distance(q); d < best {
			best = d
		}
	}
	return best
}

// GD returns the generational distance of self against the reference
// front ref: sqrt(sum of squared nearest distances from self's keys to
// ref) divided by the size of self.
func (f *Front[K, V]) GD(ref *Front[K, V]) float64 {
	return gd(f.index, ref.index)
}

// StdGD returns the sample standard deviation of the nearest distances
// used by GD.
func (f *Front[K, V]) StdGD(ref *Front[K, V]) float64 {
	return stdNearestDistances(f.index, ref.index)
}

// IGD returns the inverted generational distance: GD with the roles of
// self and ref swapped.
func (f *Front[K, V]) IGD(ref *Front[K, V]) float64 {
	return gd(ref.index, f.index)
}

func gd[K Number, V any](from, to Index[K, V]) float64 {
	n := from.Size()
	if n == 0 {
		return 0
	}
	var sumSq float64
	for p := range from.All() {
		d := nearestDistance(p, to)
		sumSq += d * d
	}
	return math.Sqrt(sumSq) / float64(n)
}

func stdNearestDistances[K Number, V any](from, to Index[K, V]) float64 {
	var dists []float64
	for p := range from.All() {
		dists = append(dists, nearestDistance(p, to))
	}
	return sampleStdDev(dists)
}

func sampleStdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(n)
	var variance float64
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(n - 1)
	return math.Sqrt(variance)
}

// IGDPlus returns the IGD+ indicator (Ishibuchi et al.): for every key q
// of ref, the minimum over self's keys p of a modified distance that is 0
// on every dimension where p is at least as good as q, and the raw gap
// elsewhere; the result is the square root of the sum of these squared
// minimum distances, divided by |ref|.
func (f *Front[K, V]) IGDPlus(ref *Front[K, V]) float64 {
	dist, _ := igdPlusDistances(f, ref)
	n := float64(len(dist))
	if n == 0 {
		return 0
	}
	var sumSq float64
	for _, d := range dist {
		sumSq += d * d
	}
	return math.Sqrt(sumSq) / n
}

// StdIGDPlus returns the sample standard deviation of the per-reference
// minimum modified distances used by IGDPlus.
func (f *Front[K, V]) StdIGDPlus(ref *Front[K, V]) float64 {
	dist, _ := igdPlusDistances(f, ref)
	return sampleStdDev(dist)
}

func igdPlusDistances[K Number, V any](f, ref *Front[K, V]) ([]float64, error) {
	out := make([]float64, 0, ref.Size())
	for q := range ref.index.All() {
		best := math.Inf(1)
		for p := range f.index.All() {
			d := modifiedDistancePlus(p, q, f.directions)
			if d < best {
				best = d
			}
		}
		if math.IsInf(best, 1) {
			best = 0
		}
		out = append(out, best)
	}
	return out, nil
}

// modifiedDistancePlus computes the IGD+ per-dimension gap between
// solution p and reference point q: 0 wherever p is at least as good as q,
// the raw coordinate gap otherwise.
func modifiedDistancePlus[K Number](p, q Point[K], d Directions) float64 {
	var sumSq float64
	for i := 0; i < p.Dim(); i++ {
		minimize := i < len(d) && d[i]
		pv, qv := float64(p.At(i)), float64(q.At(i))
		var gap float64
		if minimize {
			gap = math.Max(0, pv-qv)
		} else {
			gap = math.Max(0, qv-pv)
		}
		sumSq += gap * gap
	}
	return math.Sqrt(sumSq)
}

// Hausdorff returns max(GD, IGD), a symmetric distance between self and
// ref.
func (f *Front[K, V]) Hausdorff(ref *Front[K, V]) float64 {
	return math.Max(f.GD(ref), f.IGD(ref))
}

// Uniformity returns the sample standard deviation of each stored key's
// distance to its nearest neighbour within the same front; lower values
// indicate a more evenly spread front.
func (f *Front[K, V]) Uniformity() float64 {
	var dists []float64
	for p := range f.index.All() {
		best := math.Inf(1)
		for q := range f.index.All() {
			if p.Equal(q) {
				continue
			}
			if d := p.Distance(q); d < best {
				best = d
			}
		}
		if !math.IsInf(best, 1) {
			dists = append(dists, best)
		}
	}
	return sampleStdDev(dists)
}

// AverageDistance returns the mean Euclidean distance over every distinct
// pair of stored keys.
func (f *Front[K, V]) AverageDistance() float64 {
	keys := f.keySlice()
	var sum float64
	var count int
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			sum += keys[i].Distance(keys[j])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// AverageNearestDistance returns, for every stored key, the mean distance
// to its k nearest neighbours within the front (excluding itself),
// averaged over every key.
func (f *Front[K, V]) AverageNearestDistance(k int) float64 {
	keys := f.keySlice()
	if len(keys) < 2 || k <= 0 {
		return 0
	}
	var total float64
	for i, p := range keys {
		dists := make([]float64, 0, len(keys)-1)
		for j, q := range keys {
			if i == j {
				continue
			}
			dists = append(dists, p.Distance(q))
		}
		sortFloats(dists)
		limit := k
		if limit > len(dists) {
			limit = len(dists)
		}
		var sum float64
		for _, d := range dists[:limit] {
			sum += d
		}
		total += sum / float64(limit)
	}
	return total / float64(len(keys))
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func (f *Front[K, V]) keySlice() []Point[K] {
	keys := make([]Point[K], 0, f.Size())
	for k := range f.index.All() {
		keys = append(keys, k)
	}
	return keys
}

// CrowdingDistance returns the NSGA-II crowding distance of point within
// the front: for each dimension, the normalized gap between point's
// neighbours on that dimension, summed. An endpoint on any dimension
// receives +Inf.
func (f *Front[K, V]) CrowdingDistance(point Point[K]) float64 {
	keys := f.keySlice()
	dim := point.Dim()
	if len(keys) < 2 {
		return math.Inf(1)
	}

	var total float64
	for d := 0; d < dim; d++ {
		sorted := append([]Point[K](nil), keys...)
		sortPointsByDim(sorted, d)

		idx := -1
		for i, k := range sorted {
			if k.Equal(point) {
				idx = i
				break
			}
		}
		if idx == -1 {
			continue
		}
		if idx == 0 || idx == len(sorted)-1 {
			return math.Inf(1)
		}

		lo := float64(sorted[0].At(d))
		hi := float64(sorted[len(sorted)-1].At(d))
		spread := hi - lo
		if spread == 0 {
			continue
		}
		gap := float64(sorted[idx+1].At(d)) - float64(sorted[idx-1].At(d))
		total += gap / spread
	}
	return total
}

func sortPointsByDim[K Number](pts []Point[K], dim int) {
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && pts[j-1].At(dim) > pts[j].At(dim); j-- {
			pts[j-1], pts[j] = pts[j], pts[j-1]
		}
	}
}

// AverageCrowdingDistance returns the mean crowding distance over every
// stored key whose crowding distance is finite (boundary keys, whose
// distance is +Inf, are excluded).
func (f *Front[K, V]) AverageCrowdingDistance() float64 {
	var sum float64
	var count int
	for _, k := range f.keySlice() {
		cd := f.CrowdingDistance(k)
		if math.IsInf(cd, 1) {
			continue
		}
		sum += cd
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func dimRange[K Number, V any](f *Front[K, V], dim int) float64 {
	var lo, hi float64
	first := true
	for k := range f.index.All() {
		v := float64(k.At(dim))
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

// DirectConflict returns sum(|p[i] - p[j]|) over every stored key.
func (f *Front[K, V]) DirectConflict(i, j int) float64 {
	var sum float64
	for k := range f.index.All() {
		sum += math.Abs(float64(k.At(i)) - float64(k.At(j)))
	}
	return sum
}

// NormalizedDirectConflict divides DirectConflict by the product of the
// two dimensions' observed ranges.
func (f *Front[K, V]) NormalizedDirectConflict(i, j int) float64 {
	norm := dimRange(f, i) * dimRange(f, j)
	if norm == 0 {
		return 0
	}
	return f.DirectConflict(i, j) / norm
}

// MaxminConflict returns (max-min on i) - (max-min on j).
func (f *Front[K, V]) MaxminConflict(i, j int) float64 {
	return dimRange(f, i) - dimRange(f, j)
}

// NormalizedMaxminConflict divides MaxminConflict by the same normalizer
// NormalizedDirectConflict uses, keeping the raw and normalized forms
// consistent as the spec requires.
func (f *Front[K, V]) NormalizedMaxminConflict(i, j int) float64 {
	norm := dimRange(f, i) * dimRange(f, j)
	if norm == 0 {
		return 0
	}
	return f.MaxminConflict(i, j) / norm
}

// Conflict returns an aggregate conflict measure between dimensions i and
// j: the direct conflict scaled by how little the two dimensions'
// rankings agree (1 - Pearson correlation of ranks, halved so identical
// rankings yield 0 and fully reversed rankings yield the full direct
// conflict).
func (f *Front[K, V]) Conflict(i, j int) float64 {
	corr := rankCorrelation(f, i, j)
	return f.DirectConflict(i, j) * (1 - corr) / 2
}

// NormalizedConflict is Conflict divided by the same normalizer
// NormalizedDirectConflict uses.
func (f *Front[K, V]) NormalizedConflict(i, j int) float64 {
	norm := dimRange(f, i) * dimRange(f, j)
	if norm == 0 {
		return 0
	}
	return f.Conflict(i, j) / norm
}

// rankCorrelation returns the Pearson correlation coefficient of the
// rankings of stored keys along dimensions i and j (equivalent to a
// Spearman rank correlation computed directly on ranks).
func rankCorrelation[K Number, V any](f *Front[K, V], i, j int) float64 {
	keys := f.keySlice()
	n := len(keys)
	if n < 2 {
		return 1
	}

	valsI := make([]float64, n)
	valsJ := make([]float64, n)
	for idx, k := range keys {
		valsI[idx] = float64(k.At(i))
		valsJ[idx] = float64(k.At(j))
	}

	ranksI := ranksOf(valsI)
	ranksJ := ranksOf(valsJ)

	return pearson(ranksI, ranksJ)
}

func ranksOf(xs []float64) []float64 {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < n; i++ {
		for j := i; j > 0 && xs[idx[j-1]] > xs[idx[j]]; j-- {
			idx[j-1], idx[j] = idx[j], idx[j-1]
		}
	}
	ranks := make([]float64, n)
	for rank, i := range idx {
		ranks[i] = float64(rank)
	}
	return ranks
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n == 0 {
		return 1
	}
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 1
	}
	return cov / math.Sqrt(varX*varY)
}
