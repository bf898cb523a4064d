// Package beam simulates the electron beam of an analog oscilloscope as a
// mass-spring-damper system driven per audio sample.
package beam

import (
	"math"
	"math/rand"

	"github.com/olivier-w/oscil/internal/scope"
)

// Params configures the physics model. The original hardware-inspired
// constants varied between implementations; everything that differed is a
// parameter here.
type Params struct {
	Mass            float64
	ForceMultiplier float64
	Damping         float64 // must stay below 1 for the integrator to converge
	Scale           float64 // clamp bounds derive from this
	NoiseAmount     float64 // uniform noise added to the input signal, 0 disables
	Smoothing       float64 // exponential position smoothing in (0,1], 0 disables
	Dimming         DimmingParams
}

// DefaultParams returns a stable tuning for 48 kHz sample rates.
func DefaultParams() Params {
	return Params{
		Mass:            1.0,
		ForceMultiplier: 0.3,
		Damping:         0.85,
		Scale:           1.0,
		NoiseAmount:     0,
		Smoothing:       0,
		Dimming:         DefaultDimming(),
	}
}

// State is the persistent simulation state. It is owned by exactly one
// Simulator and mutated once per input sample.
type State struct {
	X, Y             float64
	VX, VY           float64
	SmoothX, SmoothY float64
}

// Simulator advances a beam State sample by sample. Not safe for
// concurrent use; one goroutine owns it.
type Simulator struct {
	params Params
	state  State
	rng    *rand.Rand
}

func NewSimulator(p Params) *Simulator {
	return &Simulator{
		params: p,
		rng:    rand.New(rand.NewSource(rand.Int63())),
	}
}

func (s *Simulator) Params() Params { return s.params }

func (s *Simulator) SetParams(p Params) { s.params = p }

// State returns a copy of the current beam state.
func (s *Simulator) State() State { return s.state }

// Reset returns the beam to the origin at rest.
func (s *Simulator) Reset() { s.state = State{} }

// Step advances the simulation one sample toward the normalized target and
// returns the rendered beam position (the smoothed position when smoothing
// is enabled). A non-finite target or a diverged state resets the beam to
// the origin.
func (s *Simulator) Step(targetX, targetY float64) (float64, float64) {
	p := &s.params
	st := &s.state

	if p.NoiseAmount > 0 {
		targetX += (s.rng.Float64()*2 - 1) * p.NoiseAmount
		targetY += (s.rng.Float64()*2 - 1) * p.NoiseAmount
	}

	mass := p.Mass
	if mass <= 0 {
		mass = 1
	}

	// Forward Euler. Stable at audio rates as long as damping < 1.
	ax := (targetX - st.X) * p.ForceMultiplier / mass
	ay := (targetY - st.Y) * p.ForceMultiplier / mass
	st.VX = (st.VX + ax) * p.Damping
	st.VY = (st.VY + ay) * p.Damping
	st.X += st.VX
	st.Y += st.VY

	if !finite(st.X) || !finite(st.Y) || !finite(st.VX) || !finite(st.VY) {
		*st = State{}
		return 0, 0
	}

	posLimit := 10 * p.Scale
	velLimit := 2 * p.Scale
	st.X = clamp(st.X, -posLimit, posLimit)
	st.Y = clamp(st.Y, -posLimit, posLimit)
	st.VX = clamp(st.VX, -velLimit, velLimit)
	st.VY = clamp(st.VY, -velLimit, velLimit)

	if p.Smoothing > 0 {
		// Smoothed position is display-only; it never feeds back into
		// the dynamics above.
		st.SmoothX += (st.X - st.SmoothX) * p.Smoothing
		st.SmoothY += (st.Y - st.SmoothY) * p.Smoothing
		return st.SmoothX, st.SmoothY
	}
	return st.X, st.Y
}

// Trace is one simulated pass over a target signal: rendered positions and
// the beam speed into each point, ready for the persistence compositor.
type Trace struct {
	Points []scope.Point
	Speeds []float64
}

// Run steps the simulator over an equal-length pair of target channels and
// collects the resulting trajectory. Extra samples in the longer channel
// are ignored.
func (s *Simulator) Run(xs, ys []float64) Trace {
	n := min(len(xs), len(ys))
	tr := Trace{
		Points: make([]scope.Point, 0, n),
		Speeds: make([]float64, 0, n),
	}
	prev := scope.Point{X: s.state.X, Y: s.state.Y}
	if s.params.Smoothing > 0 {
		prev = scope.Point{X: s.state.SmoothX, Y: s.state.SmoothY}
	}
	for i := 0; i < n; i++ {
		x, y := s.Step(xs[i], ys[i])
		pt := scope.Point{X: x, Y: y}
		tr.Points = append(tr.Points, pt)
		tr.Speeds = append(tr.Speeds, scope.Dist(prev, pt))
		prev = pt
	}
	return tr
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
