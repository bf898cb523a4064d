package audio

import "testing"

func TestTapSnapshotChronological(t *testing.T) {
	tap := NewTap(8)
	tap.Push([][2]float64{{1, 1}, {2, 2}, {3, 3}})

	got := tap.Snapshot(3)
	if len(got) != 3 {
		t.Fatalf("got %d frames, want 3", len(got))
	}
	for i, want := range []float64{1, 2, 3} {
		if got[i][0] != want {
			t.Errorf("frame %d = %v, want %v", i, got[i][0], want)
		}
	}
}

func TestTapReturnsMostRecent(t *testing.T) {
	tap := NewTap(8)
	tap.Push([][2]float64{{1, 0}, {2, 0}, {3, 0}, {4, 0}})

	got := tap.Snapshot(2)
	if len(got) != 2 || got[0][0] != 3 || got[1][0] != 4 {
		t.Fatalf("Snapshot(2) = %v, want last two frames", got)
	}
}

func TestTapOverwritesOldestWhenFull(t *testing.T) {
	tap := NewTap(4)
	for i := 1; i <= 6; i++ {
		tap.Push([][2]float64{{float64(i), 0}})
	}

	got := tap.Snapshot(10)
	if len(got) != 4 {
		t.Fatalf("got %d frames, want capacity 4", len(got))
	}
	for i, want := range []float64{3, 4, 5, 6} {
		if got[i][0] != want {
			t.Errorf("frame %d = %v, want %v", i, got[i][0], want)
		}
	}
}

func TestTapSnapshotShorterThanAsked(t *testing.T) {
	tap := NewTap(16)
	tap.Push([][2]float64{{1, 1}})

	if got := tap.Snapshot(8); len(got) != 1 {
		t.Fatalf("got %d frames, want 1", len(got))
	}
	if got := tap.Snapshot(0); got != nil {
		t.Fatalf("Snapshot(0) = %v, want nil", got)
	}
}

func TestTapClear(t *testing.T) {
	tap := NewTap(8)
	tap.Push([][2]float64{{1, 1}, {2, 2}})
	tap.Clear()

	if got := tap.Snapshot(8); got != nil {
		t.Fatalf("Snapshot after Clear = %v, want nil", got)
	}
}

func TestPCMRoundTrip(t *testing.T) {
	left := []float64{0, 0.5, -0.5, 1, -1}
	right := []float64{0.25, -0.25, 0.75, -1, 1}

	frames := decodePCM(encodePCM(left, right))
	if len(frames) != len(left) {
		t.Fatalf("got %d frames, want %d", len(frames), len(left))
	}
	for i := range frames {
		if diff := frames[i][0] - left[i]; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("left[%d] = %v, want ~%v", i, frames[i][0], left[i])
		}
		if diff := frames[i][1] - right[i]; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("right[%d] = %v, want ~%v", i, frames[i][1], right[i])
		}
	}
}

func TestEncodePCMClampsOutOfRange(t *testing.T) {
	frames := decodePCM(encodePCM([]float64{4, -4}, []float64{0, 0}))
	if frames[0][0] > 1 || frames[1][0] < -1 {
		t.Fatalf("clipped samples decoded to %v, %v", frames[0][0], frames[1][0])
	}
}

func TestEncodeInterleavedMatchesPairs(t *testing.T) {
	a := encodePCM([]float64{0.1, 0.2}, []float64{0.3, 0.4})
	b := encodeInterleavedPCM([]float64{0.1, 0.3, 0.2, 0.4})
	if string(a) != string(b) {
		t.Fatal("interleaved encoding differs from channel-pair encoding")
	}
}
