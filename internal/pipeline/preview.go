package pipeline

import "github.com/olivier-w/oscil/internal/scope"

// Preview is the processed geometry flattened for cheap transfer to a
// renderer: one packed coordinate buffer plus a segment offset table, so
// the preview can be redrawn without re-running the pipeline.
type Preview struct {
	// Coords holds x,y pairs for every point of every segment.
	Coords []float32
	// Offsets[i] is the index (in points, not floats) where segment i
	// starts in Coords. Segment i spans [Offsets[i], Offsets[i+1]) with
	// an implicit final bound of len(Coords)/2.
	Offsets []int
}

// MakePreview flattens segments into a Preview.
func MakePreview(segs []scope.Segment) Preview {
	total := 0
	for _, s := range segs {
		total += len(s)
	}
	pv := Preview{
		Coords:  make([]float32, 0, total*2),
		Offsets: make([]int, 0, len(segs)),
	}
	for _, s := range segs {
		pv.Offsets = append(pv.Offsets, len(pv.Coords)/2)
		for _, p := range s {
			pv.Coords = append(pv.Coords, float32(p.X), float32(p.Y))
		}
	}
	return pv
}

// NumSegments returns the number of segments in the preview.
func (p Preview) NumSegments() int { return len(p.Offsets) }

// NumPoints returns the total point count.
func (p Preview) NumPoints() int { return len(p.Coords) / 2 }

// Segment returns the packed x,y coordinates of segment i.
func (p Preview) Segment(i int) []float32 {
	start := p.Offsets[i] * 2
	end := len(p.Coords)
	if i+1 < len(p.Offsets) {
		end = p.Offsets[i+1] * 2
	}
	return p.Coords[start:end]
}
