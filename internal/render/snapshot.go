package render

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/olivier-w/oscil/internal/pipeline"
)

// SavePNG draws a processed preview as stroked polylines on a black
// background and writes it to path. Segment alpha falls off slightly with
// draw order so overlapping strokes read like a real trace.
func SavePNG(path string, pv pipeline.Preview, width, height int) error {
	if width < 16 {
		width = 16
	}
	if height < 16 {
		height = 16
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("snapshot background: %w", err)
	}

	dc.SetLineWidth(1.5)
	n := pv.NumSegments()
	for i := 0; i < n; i++ {
		coords := pv.Segment(i)
		if len(coords) < 4 {
			continue
		}
		alpha := 0.95
		if n > 1 {
			alpha = 0.95 - 0.35*float64(i)/float64(n-1)
		}
		dc.SetRGBA(0.15, 0.85, 0.35, alpha)
		dc.MoveTo(toPixel(coords[0], width), toPixelY(coords[1], height))
		for j := 2; j < len(coords); j += 2 {
			dc.LineTo(toPixel(coords[j], width), toPixelY(coords[j+1], height))
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("snapshot segment %d: %w", i, err)
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func toPixel(v float32, size int) float64 {
	return (float64(v) + 1) / 2 * float64(size-1)
}

func toPixelY(v float32, size int) float64 {
	return (1 - (float64(v)+1)/2) * float64(size-1)
}
