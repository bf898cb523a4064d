package pipeline

// Mode selects how processed frames are emitted as audio.
type Mode int

const (
	// ModeFrequency emits one fixed-length stereo buffer sized to
	// sampleRate/frequency, looped by the player.
	ModeFrequency Mode = iota
	// ModePoints emits the processed geometry as an interleaved point
	// stream consumed sample-by-sample.
	ModePoints
)

func (m Mode) String() string {
	if m == ModePoints {
		return "points"
	}
	return "frequency"
}

// ResampleMode selects the densification strategy applied before emission.
type ResampleMode int

const (
	ResampleOff ResampleMode = iota
	ResampleUniform
	ResampleProportional
)

func (r ResampleMode) String() string {
	switch r {
	case ResampleUniform:
		return "uniform"
	case ResampleProportional:
		return "proportional"
	default:
		return "off"
	}
}

// Settings is the full processing configuration. The processor holds one
// current Settings value and replaces it wholesale when a Patch arrives.
type Settings struct {
	Mode                 Mode
	Frequency            float64 // Hz, frequency mode loop rate
	SampleRate           float64 // Hz
	Rotation             float64 // degrees, applied after preview capture
	PointSpacing         float64 // normalized units
	Resample             ResampleMode
	OptimizeOrder        bool
	TrackBeamPosition    bool // chain ordering from the previous frame's end point
	PreviewAfterResample bool // capture preview from dense rather than raw geometry
}

func DefaultSettings() Settings {
	return Settings{
		Mode:                 ModeFrequency,
		Frequency:            100,
		SampleRate:           48000,
		Rotation:             0,
		PointSpacing:         0.01,
		Resample:             ResampleUniform,
		OptimizeOrder:        true,
		TrackBeamPosition:    true,
		PreviewAfterResample: true,
	}
}

// Patch carries a partial settings update; nil fields keep their current
// value.
type Patch struct {
	Mode                 *Mode
	Frequency            *float64
	SampleRate           *float64
	Rotation             *float64
	PointSpacing         *float64
	Resample             *ResampleMode
	OptimizeOrder        *bool
	TrackBeamPosition    *bool
	PreviewAfterResample *bool
}

// Merge applies the patch to a copy of s and returns the replacement.
func (s Settings) Merge(p Patch) Settings {
	if p.Mode != nil {
		s.Mode = *p.Mode
	}
	if p.Frequency != nil {
		s.Frequency = *p.Frequency
	}
	if p.SampleRate != nil {
		s.SampleRate = *p.SampleRate
	}
	if p.Rotation != nil {
		s.Rotation = *p.Rotation
	}
	if p.PointSpacing != nil {
		s.PointSpacing = *p.PointSpacing
	}
	if p.Resample != nil {
		s.Resample = *p.Resample
	}
	if p.OptimizeOrder != nil {
		s.OptimizeOrder = *p.OptimizeOrder
	}
	if p.TrackBeamPosition != nil {
		s.TrackBeamPosition = *p.TrackBeamPosition
	}
	if p.PreviewAfterResample != nil {
		s.PreviewAfterResample = *p.PreviewAfterResample
	}
	return s
}
