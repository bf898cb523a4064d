package scope

import (
	"math"
	"testing"
)

func TestRotateQuarterTurn(t *testing.T) {
	segs := []Segment{{{X: 1, Y: 0}, {X: 0, Y: 0}}}
	out := Rotate(segs, 90)

	got := out[0][0]
	if math.Abs(got.X-0) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Fatalf("Rotate(90) of (1,0) = (%v,%v), want (0,1)", got.X, got.Y)
	}
}

func TestRotateZeroIsIdentity(t *testing.T) {
	segs := []Segment{{{X: 0.3, Y: -0.7}, {X: 1, Y: 1}}}
	out := Rotate(segs, 0)
	if &out[0][0] != &segs[0][0] {
		t.Fatal("Rotate(0) should return the input unchanged")
	}
}

func TestSegmentLength(t *testing.T) {
	s := Segment{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}}
	if got := s.Length(); math.Abs(got-7) > 1e-9 {
		t.Fatalf("Length() = %v, want 7", got)
	}
}

func TestReversedKeepsOriginal(t *testing.T) {
	s := Segment{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	r := s.Reversed()

	if r[0].X != 2 || r[2].X != 0 {
		t.Fatalf("Reversed() = %v", r)
	}
	if s[0].X != 0 {
		t.Fatal("Reversed() mutated the original")
	}
}

func TestCleanDropsDegenerates(t *testing.T) {
	segs := []Segment{
		{{X: 0, Y: 0}},
		{{X: 0, Y: 0}, {X: 1, Y: 1}},
		{},
	}
	out := Clean(segs)
	if len(out) != 1 {
		t.Fatalf("Clean() kept %d segments, want 1", len(out))
	}
	if len(out[0]) != 2 {
		t.Fatalf("Clean() kept wrong segment: %v", out[0])
	}
}
