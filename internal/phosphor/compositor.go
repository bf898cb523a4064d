// Package phosphor implements the frame-to-frame persistence effect of a
// CRT: each pass fades the previous frame and draws the new beam trace on
// top of it.
package phosphor

import (
	"github.com/olivier-w/oscil/internal/beam"
	"github.com/olivier-w/oscil/internal/scope"
)

// Compositor accumulates beam traces into a float intensity grid with
// phosphor-style decay. Two buffers alternate roles so a fade step never
// reads the surface it is writing. Coordinates are normalized [-1, 1]; the
// grid is addressed in dots.
type Compositor struct {
	width  int
	height int
	front  []float32 // last presented frame
	back   []float32 // frame under construction
}

func NewCompositor(width, height int) *Compositor {
	c := &Compositor{}
	c.resize(width, height)
	return c
}

func (c *Compositor) Width() int  { return c.width }
func (c *Compositor) Height() int { return c.height }

// Frame returns the last presented intensity grid, row-major, values in
// [0, 1]. Sinks rasterize from this; they must not retain it across calls.
func (c *Compositor) Frame() []float32 { return c.front }

func (c *Compositor) resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width = width
	c.height = height
	c.front = make([]float32, width*height)
	c.back = make([]float32, width*height)
}

// Clear blanks both buffers.
func (c *Compositor) Clear() {
	for i := range c.front {
		c.front[i] = 0
	}
	for i := range c.back {
		c.back[i] = 0
	}
}

// ClearWithPersistence starts a new pass: the previous frame is composited
// into the back buffer at reduced opacity. persistence 0 gives an
// instantaneous trace, values near 1 give long trails. A size change
// reallocates and drops the old trail.
func (c *Compositor) ClearWithPersistence(persistence float64, width, height int) {
	if width != c.width || height != c.height {
		c.resize(width, height)
		return
	}
	if persistence <= 0 {
		for i := range c.back {
			c.back[i] = 0
		}
		return
	}
	if persistence > 1 {
		persistence = 1
	}
	keep := float32(persistence)
	for i, v := range c.front {
		c.back[i] = v * keep
	}
}

// RenderTrace draws the beam trajectory into the current pass and presents
// it. speeds[i] is the beam speed into points[i] and drives per-subsegment
// dimming. After the draw the buffers swap: the composite becomes the
// presented frame and the next pass fades from it.
func (c *Compositor) RenderTrace(points []scope.Point, speeds []float64, dim beam.DimmingParams) {
	for i := 1; i < len(points); i++ {
		speed := 0.0
		if i < len(speeds) {
			speed = speeds[i]
		}
		c.stampLine(points[i-1], points[i], float32(dim.Opacity(speed)))
	}
	c.front, c.back = c.back, c.front
}

// stampLine rasterizes one subsegment into the back buffer with additive
// intensity, saturating at 1.
func (c *Compositor) stampLine(a, b scope.Point, opacity float32) {
	x0, y0 := c.toGrid(a)
	x1, y1 := c.toGrid(b)

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		if x0 >= 0 && x0 < c.width && y0 >= 0 && y0 < c.height {
			idx := y0*c.width + x0
			v := c.back[idx] + opacity
			if v > 1 {
				v = 1
			}
			c.back[idx] = v
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Compositor) toGrid(p scope.Point) (int, int) {
	x := int((p.X + 1) / 2 * float64(c.width-1))
	y := int((1 - (p.Y+1)/2) * float64(c.height-1))
	return x, y
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
