package ui

import "github.com/charmbracelet/harmonica"

// springValue smooths a jumpy readout (point counts, buffer sizes) so the
// status line does not flicker between ticks.
type springValue struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newSpringValue(fps int) springValue {
	return springValue{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.9)}
}

func (s *springValue) step(target float64) float64 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	return s.pos
}
