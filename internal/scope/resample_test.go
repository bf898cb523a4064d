package scope

import (
	"math"
	"testing"
)

func TestUniformKeepsFirstPoint(t *testing.T) {
	segs := []Segment{{{X: -0.4, Y: 0.2}, {X: 0.6, Y: 0.2}}}
	out := ResampleUniform(segs, 0.1)

	if out[0][0] != segs[0][0] {
		t.Fatalf("first point = %v, want %v", out[0][0], segs[0][0])
	}
}

func TestUniformStepSpacing(t *testing.T) {
	segs := []Segment{{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	out := ResampleUniform(segs, 0.25)

	// 0, 0.25, 0.5, 0.75, 1.0
	if len(out[0]) != 5 {
		t.Fatalf("got %d points: %v, want 5", len(out[0]), out[0])
	}
	for i, p := range out[0] {
		want := 0.25 * float64(i)
		if math.Abs(p.X-want) > 1e-9 {
			t.Fatalf("point %d at x=%v, want %v", i, p.X, want)
		}
	}
}

func TestUniformSkipsNearCoincidentEndpoint(t *testing.T) {
	// The final original point lands 0.005 past the last resampled point,
	// inside the 0.1*spacing dedup radius.
	segs := []Segment{{{X: 0, Y: 0}, {X: 0.505, Y: 0}}}
	out := ResampleUniform(segs, 0.25)

	last := out[0][len(out[0])-1]
	if math.Abs(last.X-0.5) > 1e-9 {
		t.Fatalf("last point x=%v, want 0.5 (endpoint deduplicated)", last.X)
	}
}

func TestUniformAppendsDistantEndpoint(t *testing.T) {
	segs := []Segment{{{X: 0, Y: 0}, {X: 0.6, Y: 0}}}
	out := ResampleUniform(segs, 0.25)

	last := out[0][len(out[0])-1]
	if last.X != 0.6 {
		t.Fatalf("last point x=%v, want original endpoint 0.6", last.X)
	}
}

func TestUniformNonPositiveSpacingIsNoOp(t *testing.T) {
	segs := []Segment{{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	if out := ResampleUniform(segs, 0); &out[0][0] != &segs[0][0] {
		t.Fatal("spacing=0 should return input unchanged")
	}
	if out := ResampleUniform(segs, -1); &out[0][0] != &segs[0][0] {
		t.Fatal("negative spacing should return input unchanged")
	}
}

func TestUniformSkipsZeroLengthEdges(t *testing.T) {
	segs := []Segment{{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}}}
	out := ResampleUniform(segs, 0.5)

	for i := 1; i < len(out[0]); i++ {
		if out[0][i] == out[0][i-1] {
			t.Fatalf("duplicate consecutive point at %d: %v", i, out[0])
		}
	}
}

func TestUniformNeverShrinksBelowTwo(t *testing.T) {
	segs := []Segment{{{X: 0, Y: 0}, {X: 0.01, Y: 0}}}
	out := ResampleUniform(segs, 0.5)
	if len(out[0]) < 2 {
		t.Fatalf("segment shrank to %d points", len(out[0]))
	}
}

func TestProportionalPreservesOriginalsInOrder(t *testing.T) {
	seg := Segment{{X: 0, Y: 0}, {X: 0.5, Y: 0.3}, {X: 1, Y: 0}}
	out := ResampleProportional([]Segment{seg}, 0.01)

	idx := 0
	for _, p := range out[0] {
		if idx < len(seg) && p == seg[idx] {
			idx++
		}
	}
	if idx != len(seg) {
		t.Fatalf("only %d of %d original points found in order", idx, len(seg))
	}
}

func TestProportionalNeverRemoves(t *testing.T) {
	seg := make(Segment, 100)
	for i := range seg {
		seg[i] = Point{X: float64(i) / 99, Y: 0}
	}
	out := ResampleProportional([]Segment{seg}, 0.5) // budget far below current

	if len(out[0]) != len(seg) {
		t.Fatalf("got %d points, want %d (pass-through when over budget)", len(out[0]), len(seg))
	}
}

func TestProportionalBudgetExact(t *testing.T) {
	cases := []struct {
		name string
		segs []Segment
	}{
		{"equal thirds", []Segment{
			{{X: 0, Y: 0}, {X: 1, Y: 0}},
			{{X: 0, Y: 0.1}, {X: 1, Y: 0.1}},
			{{X: 0, Y: 0.2}, {X: 1, Y: 0.2}},
		}},
		{"ten to one", []Segment{
			{{X: 0, Y: 0}, {X: 10, Y: 0}},
			{{X: 0, Y: 1}, {X: 1, Y: 1}},
			{{X: 0, Y: 2}, {X: 1, Y: 2}},
		}},
		{"with zero-length segment", []Segment{
			{{X: 0, Y: 0}, {X: 1, Y: 0}},
			{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spacing := 0.01
			total := TotalLength(tc.segs)
			target := int(math.Ceil(total / spacing))
			current := 0
			for _, s := range tc.segs {
				current += len(s)
			}

			out := ResampleProportional(tc.segs, spacing)

			got := 0
			for _, s := range out {
				got += len(s)
			}
			want := target
			if current > target {
				want = current
			}
			if got != want {
				t.Fatalf("total points = %d, want exactly %d", got, want)
			}
		})
	}
}

func TestProportionalZeroLengthGetsNothing(t *testing.T) {
	segs := []Segment{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}},
	}
	out := ResampleProportional(segs, 0.1)

	if len(out[1]) != 2 {
		t.Fatalf("zero-length segment grew to %d points", len(out[1]))
	}
}

func TestLargestRemainderExactness(t *testing.T) {
	cases := []struct {
		weights []float64
		total   int
	}{
		{[]float64{1, 1, 1}, 10},
		{[]float64{10, 1, 1}, 7},
		{[]float64{1, 0, 3}, 5},
		{[]float64{0.3, 0.3, 0.4}, 1},
	}
	for _, tc := range cases {
		shares := largestRemainder(tc.weights, tc.total)
		sum := 0
		for _, s := range shares {
			sum += s
		}
		if sum != tc.total {
			t.Fatalf("weights %v total %d: shares %v sum %d", tc.weights, tc.total, shares, sum)
		}
	}
}

func TestLargestRemainderZeroWeights(t *testing.T) {
	shares := largestRemainder([]float64{0, 0}, 5)
	if shares[0] != 0 || shares[1] != 0 {
		t.Fatalf("zero weights allocated %v", shares)
	}
}

func TestUniformApproximatelyIdempotent(t *testing.T) {
	segs := []Segment{{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	once := ResampleUniform(segs, 0.1)
	twice := ResampleUniform(once, 0.1)

	if math.Abs(float64(len(once[0])-len(twice[0]))) > 1 {
		t.Fatalf("repeated resampling drifted: %d then %d points", len(once[0]), len(twice[0]))
	}
}
