package beam

import (
	"math"
	"testing"
)

func TestOpacityFullAtSlowSpeed(t *testing.T) {
	d := DefaultDimming()
	if got := d.Opacity(0); got != d.BasePower {
		t.Fatalf("Opacity(0) = %v, want BasePower %v", got, d.BasePower)
	}
	if got := d.Opacity(d.Threshold); got != d.BasePower {
		t.Fatalf("Opacity(threshold) = %v, want BasePower %v", got, d.BasePower)
	}
}

func TestOpacityMonotonicallyDims(t *testing.T) {
	d := DefaultDimming()
	prev := math.Inf(1)
	for speed := 0.0; speed < 2; speed += 0.05 {
		o := d.Opacity(speed)
		if o > prev {
			t.Fatalf("opacity rose from %v to %v at speed %v", prev, o, speed)
		}
		prev = o
	}
}

func TestOpacityFloor(t *testing.T) {
	d := DefaultDimming()
	got := d.Opacity(1e6)
	want := d.BasePower * d.MinFloor
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Opacity(huge) = %v, want floor %v", got, want)
	}
}

func TestOpacityExponentialRegion(t *testing.T) {
	d := DimmingParams{BasePower: 1, Threshold: 0.1, Falloff: 0.2, MinFloor: 0.001}
	got := d.Opacity(0.3)
	want := math.Exp(-(0.3 - 0.1) / 0.2)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Opacity(0.3) = %v, want %v", got, want)
	}
}
