// Package source supplies content for the scope pipeline: parametric shape
// generators and stereo audio files decoded into X/Y deflection frames.
package source

import (
	"math"

	"github.com/olivier-w/oscil/internal/scope"
)

// Shape identifies one of the built-in demo figures.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeStar
	ShapeLissajous
	numShapes
)

func (s Shape) Name() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	case ShapeStar:
		return "star"
	case ShapeLissajous:
		return "lissajous"
	default:
		return "unknown"
	}
}

// Next cycles to the following shape.
func (s Shape) Next() Shape {
	return (s + 1) % numShapes
}

// Generate produces the shape's segments at the given animation phase
// (radians). All coordinates stay within [-1, 1].
func Generate(s Shape, phase float64) []scope.Segment {
	switch s {
	case ShapeSquare:
		return square(0.72)
	case ShapeStar:
		return star(5, 0.85, 0.34, phase*0.25)
	case ShapeLissajous:
		return lissajous(3, 2, phase)
	default:
		return circle(0.8, 48)
	}
}

func circle(r float64, n int) []scope.Segment {
	seg := make(scope.Segment, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		seg[i] = scope.Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return []scope.Segment{seg}
}

// square returns four separate sides so the segment optimizer has
// something to chain.
func square(half float64) []scope.Segment {
	c := []scope.Point{
		{X: -half, Y: -half},
		{X: half, Y: -half},
		{X: half, Y: half},
		{X: -half, Y: half},
	}
	return []scope.Segment{
		{c[0], c[1]},
		{c[1], c[2]},
		{c[2], c[3]},
		{c[3], c[0]},
	}
}

func star(points int, outer, inner, spin float64) []scope.Segment {
	seg := make(scope.Segment, 0, points*2+1)
	for i := 0; i <= points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := spin + math.Pi*float64(i)/float64(points) - math.Pi/2
		seg = append(seg, scope.Point{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}
	return []scope.Segment{seg}
}

func lissajous(a, b int, phase float64) []scope.Segment {
	const n = 256
	seg := make(scope.Segment, n+1)
	for i := 0; i <= n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		seg[i] = scope.Point{
			X: 0.85 * math.Sin(float64(a)*t+phase),
			Y: 0.85 * math.Sin(float64(b)*t),
		}
	}
	return []scope.Segment{seg}
}
