package pipeline

import (
	"testing"

	"github.com/olivier-w/oscil/internal/scope"
)

func TestMakePreviewOffsets(t *testing.T) {
	segs := []scope.Segment{
		{{X: 0, Y: 1}, {X: 2, Y: 3}},
		{{X: 4, Y: 5}, {X: 6, Y: 7}, {X: 8, Y: 9}},
	}
	pv := MakePreview(segs)

	if pv.NumSegments() != 2 {
		t.Fatalf("NumSegments() = %d, want 2", pv.NumSegments())
	}
	if pv.NumPoints() != 5 {
		t.Fatalf("NumPoints() = %d, want 5", pv.NumPoints())
	}
	if pv.Offsets[0] != 0 || pv.Offsets[1] != 2 {
		t.Fatalf("Offsets = %v, want [0 2]", pv.Offsets)
	}

	first := pv.Segment(0)
	if len(first) != 4 || first[0] != 0 || first[3] != 3 {
		t.Fatalf("Segment(0) = %v", first)
	}
	second := pv.Segment(1)
	if len(second) != 6 || second[0] != 4 || second[5] != 9 {
		t.Fatalf("Segment(1) = %v", second)
	}
}

func TestMakePreviewEmpty(t *testing.T) {
	pv := MakePreview(nil)
	if pv.NumSegments() != 0 || pv.NumPoints() != 0 {
		t.Fatalf("empty preview: %+v", pv)
	}
}
