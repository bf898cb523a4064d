package scope

import "math"

// Point is a 2-D coordinate. The pipeline keeps points normalized to
// [-1, 1]; rendering sinks convert to their own pixel or cell space.
type Point struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Hypot(dx, dy)
}

// Lerp interpolates between a and b at parameter t in [0, 1].
func Lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Segment is one contiguous polyline. Order is directionally significant:
// the optimizer may reverse a whole segment but never shuffles its
// intermediate points.
type Segment []Point

// Length returns the total arc length of the polyline.
func (s Segment) Length() float64 {
	var l float64
	for i := 1; i < len(s); i++ {
		l += Dist(s[i-1], s[i])
	}
	return l
}

// Reversed returns a reversed copy of the segment.
func (s Segment) Reversed() Segment {
	out := make(Segment, len(s))
	for i, p := range s {
		out[len(s)-1-i] = p
	}
	return out
}

// Frame is one unit of segment data submitted to the processor. IDs are
// assigned by the submitter and increase monotonically; consumers discard
// results carrying a stale id.
type Frame struct {
	ID       uint64
	Segments []Segment
}

// Clean drops degenerate segments (fewer than 2 points). The optimizer and
// resamplers assume cleaned input.
func Clean(segs []Segment) []Segment {
	out := segs[:0]
	for _, s := range segs {
		if len(s) >= 2 {
			out = append(out, s)
		}
	}
	return out
}

// TotalLength returns the summed arc length of all segments.
func TotalLength(segs []Segment) float64 {
	var l float64
	for _, s := range segs {
		l += s.Length()
	}
	return l
}

// Rotate rotates every point about the origin by the given angle in
// degrees, counter-clockwise. A zero angle returns the input untouched.
func Rotate(segs []Segment, degrees float64) []Segment {
	if degrees == 0 {
		return segs
	}
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	out := make([]Segment, len(segs))
	for i, s := range segs {
		rs := make(Segment, len(s))
		for j, p := range s {
			rs[j] = Point{
				X: p.X*cos - p.Y*sin,
				Y: p.X*sin + p.Y*cos,
			}
		}
		out[i] = rs
	}
	return out
}
