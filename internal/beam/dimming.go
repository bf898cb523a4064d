package beam

import "math"

// DimmingParams maps beam speed to trace opacity. A fast-moving beam spends
// less time exciting any one spot of phosphor, so it draws dimmer.
type DimmingParams struct {
	BasePower float64 // opacity of a beam at or below the speed threshold
	Threshold float64 // speed above which dimming kicks in
	Falloff   float64 // exponential falloff rate for excess speed
	MinFloor  float64 // fraction of BasePower a trace never dims below
}

func DefaultDimming() DimmingParams {
	return DimmingParams{
		BasePower: 0.9,
		Threshold: 0.02,
		Falloff:   0.15,
		MinFloor:  0.05,
	}
}

// Opacity returns the trace opacity for a given beam speed, in [0, 1].
func (d DimmingParams) Opacity(speed float64) float64 {
	excess := speed - d.Threshold
	if excess < 0 {
		excess = 0
	}
	falloff := d.Falloff
	if falloff <= 0 {
		falloff = 1e-9
	}
	dim := math.Exp(-excess / falloff)
	if dim < d.MinFloor {
		dim = d.MinFloor
	}
	o := d.BasePower * dim
	if o > 1 {
		o = 1
	}
	if o < 0 {
		o = 0
	}
	return o
}
