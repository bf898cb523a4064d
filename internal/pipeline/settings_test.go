package pipeline

import "testing"

func TestMergePatchesOnlySetFields(t *testing.T) {
	s := DefaultSettings()
	rot := 90.0
	mode := ModePoints

	got := s.Merge(Patch{Rotation: &rot, Mode: &mode})

	if got.Rotation != 90 {
		t.Fatalf("Rotation = %v, want 90", got.Rotation)
	}
	if got.Mode != ModePoints {
		t.Fatalf("Mode = %v, want points", got.Mode)
	}
	if got.Frequency != s.Frequency || got.PointSpacing != s.PointSpacing {
		t.Fatal("unpatched fields changed")
	}
}

func TestMergeEmptyPatchIsIdentity(t *testing.T) {
	s := DefaultSettings()
	if got := s.Merge(Patch{}); got != s {
		t.Fatalf("Merge(empty) = %+v, want %+v", got, s)
	}
}

func TestModeStrings(t *testing.T) {
	if ModeFrequency.String() != "frequency" || ModePoints.String() != "points" {
		t.Fatal("Mode.String() mismatch")
	}
	if ResampleOff.String() != "off" || ResampleUniform.String() != "uniform" || ResampleProportional.String() != "proportional" {
		t.Fatal("ResampleMode.String() mismatch")
	}
}
