package render

import "strings"

// Braille renders a phosphor intensity grid as Unicode Braille cells.
// Each cell is a 2x4 dot grid, so a terminal of C columns and R rows shows
// a 2C x 4R dot surface.
type Braille struct {
	threshold float64
	profile   colorProfile
}

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

func NewBraille() *Braille {
	return &Braille{
		threshold: 0.03,
		profile:   currentColorProfile(),
	}
}

// DotSize returns the dot-grid dimensions backing a terminal area of
// cols x rows cells.
func DotSize(cols, rows int) (int, int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols * 2, rows * 4
}

// Render converts a row-major intensity grid of width x height dots into
// colored terminal lines. A cell's color follows its brightest dot.
func (b *Braille) Render(frame []float32, width, height int) string {
	cols := width / 2
	rows := height / 4
	if cols < 1 || rows < 1 {
		return ""
	}

	var out strings.Builder
	color := newANSIState()
	for row := 0; row < rows; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			var pattern uint
			peak := float32(0)
			for dx := 0; dx < 2; dx++ {
				x := col*2 + dx
				if x >= width {
					continue
				}
				for dy := 0; dy < 4; dy++ {
					y := row*4 + dy
					if y >= height {
						continue
					}
					v := frame[y*width+x]
					if float64(v) < b.threshold {
						continue
					}
					pattern |= 1 << brailleBits[dx][dy]
					if v > peak {
						peak = v
					}
				}
			}
			if pattern == 0 {
				out.WriteRune(' ')
				continue
			}
			if b.profile != colorNone {
				color.set(&out, phosphorColor(float64(peak)))
			}
			out.WriteRune(rune(0x2800 + pattern))
		}
		color.reset(&out)
	}
	return out.String()
}
