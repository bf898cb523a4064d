package util

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatHz formats a frequency reading.
func FormatHz(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.1fkHz", hz/1000)
	}
	return fmt.Sprintf("%.0fHz", hz)
}

// FormatDegrees formats a rotation angle normalized to [0, 360).
func FormatDegrees(deg float64) string {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return fmt.Sprintf("%.0f°", d)
}
