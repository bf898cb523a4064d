// Package render rasterizes composed phosphor frames for concrete targets:
// terminal cells and PNG files.
package render

import (
	"github.com/olivier-w/oscil/internal/beam"
	"github.com/olivier-w/oscil/internal/phosphor"
	"github.com/olivier-w/oscil/internal/scope"
)

// Sink is the rendering surface the core pipeline draws to. Whether the
// backing store rasterizes in terminal cells, software pixels, or on a GPU
// is the sink's business.
type Sink interface {
	Clear()
	ClearWithPersistence(persistence float64, width, height int)
	RenderTrace(points []scope.Point, speeds []float64, dim beam.DimmingParams)
}

var _ Sink = (*phosphor.Compositor)(nil)
