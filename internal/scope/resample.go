package scope

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ResampleUniform walks each polyline at a constant arc-length step and
// emits interpolated points at every step boundary. The first original
// point is always kept; the final original point is appended only when it
// sits farther than 0.1×spacing from the last emitted point, so runs of
// near-coincident endpoints do not pile up. Non-positive spacing returns
// the input unchanged.
func ResampleUniform(segs []Segment, spacing float64) []Segment {
	if spacing <= 0 {
		return segs
	}
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = resampleSegmentUniform(s, spacing)
	}
	return out
}

func resampleSegmentUniform(s Segment, spacing float64) Segment {
	res := Segment{s[0]}
	acc := 0.0 // arc length walked since the last emitted point
	cur := s[0]

	for i := 1; i < len(s); i++ {
		next := s[i]
		d := Dist(cur, next)
		if d == 0 {
			continue
		}
		for acc+d >= spacing {
			t := (spacing - acc) / d
			cur = Lerp(cur, next, t)
			res = append(res, cur)
			d = Dist(cur, next)
			acc = 0
		}
		acc += d
		cur = next
	}

	last := s[len(s)-1]
	if Dist(res[len(res)-1], last) > 0.1*spacing {
		res = append(res, last)
	}
	if len(res) < 2 {
		res = append(res, last)
	}
	return res
}

// ResampleProportional treats spacing as a global point budget:
// ceil(totalLength/spacing) points across the whole frame. Points beyond
// the current total are distributed to segments proportional to segment
// length, then within a segment to edges proportional to edge length,
// using largest-remainder rounding both times so the allocation is exact.
// All original points survive in order; this strategy only inserts, never
// removes, so a frame already at or over budget passes through unchanged.
func ResampleProportional(segs []Segment, spacing float64) []Segment {
	if spacing <= 0 || len(segs) == 0 {
		return segs
	}

	lengths := make([]float64, len(segs))
	current := 0
	for i, s := range segs {
		lengths[i] = s.Length()
		current += len(s)
	}
	total := floats.Sum(lengths)
	if total <= 0 {
		return segs
	}

	target := int(math.Ceil(total / spacing))
	extra := target - current
	if extra <= 0 {
		return segs
	}

	perSegment := largestRemainder(lengths, extra)
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = insertPoints(s, perSegment[i])
	}
	return out
}

// insertPoints adds extra interpolated points to a segment, spread across
// its edges proportional to edge length.
func insertPoints(s Segment, extra int) Segment {
	if extra <= 0 {
		return s
	}
	edges := make([]float64, len(s)-1)
	for i := 1; i < len(s); i++ {
		edges[i-1] = Dist(s[i-1], s[i])
	}
	perEdge := largestRemainder(edges, extra)

	out := make(Segment, 0, len(s)+extra)
	out = append(out, s[0])
	for i := 1; i < len(s); i++ {
		n := perEdge[i-1]
		for k := 1; k <= n; k++ {
			out = append(out, Lerp(s[i-1], s[i], float64(k)/float64(n+1)))
		}
		out = append(out, s[i])
	}
	return out
}

// largestRemainder splits total into integer shares proportional to
// weights. Floors are allocated first; the leftover goes to the largest
// fractional remainders, ties broken by lower index. Zero-weight entries
// (and a zero weight sum) receive nothing.
func largestRemainder(weights []float64, total int) []int {
	shares := make([]int, len(weights))
	sum := floats.Sum(weights)
	if sum <= 0 || total <= 0 {
		return shares
	}

	type rem struct {
		idx  int
		frac float64
	}
	rems := make([]rem, 0, len(weights))
	allocated := 0
	for i, w := range weights {
		exact := float64(total) * w / sum
		base := int(math.Floor(exact))
		shares[i] = base
		allocated += base
		rems = append(rems, rem{idx: i, frac: exact - float64(base)})
	}

	sort.SliceStable(rems, func(a, b int) bool {
		return rems[a].frac > rems[b].frac
	})
	for i := 0; i < total-allocated; i++ {
		shares[rems[i%len(rems)].idx]++
	}
	return shares
}
