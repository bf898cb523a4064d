package pipeline

import (
	"math"

	"github.com/olivier-w/oscil/internal/scope"
)

// AudioBuffer is one frequency-mode loop: dual-channel deflection voltages,
// X on the left channel and Y on the right, equal length.
type AudioBuffer struct {
	Left  []float64
	Right []float64
}

// Len returns the buffer length in sample frames.
func (b AudioBuffer) Len() int { return len(b.Left) }

// buildFrequencyBuffer concatenates segments into one stereo loop of
// ceil(sampleRate/frequency) frames. Each segment occupies a span
// proportional to its point count; the fractional remainder carries across
// segments so the spans sum exactly to the buffer length. Within a span,
// values come from linear interpolation over the segment's points.
func buildFrequencyBuffer(segs []scope.Segment, sampleRate, frequency float64) AudioBuffer {
	if sampleRate <= 0 || frequency <= 0 {
		return AudioBuffer{}
	}
	length := int(math.Ceil(sampleRate / frequency))
	if length < 1 {
		length = 1
	}

	total := 0
	for _, s := range segs {
		total += len(s)
	}
	if total == 0 {
		return AudioBuffer{}
	}

	buf := AudioBuffer{
		Left:  make([]float64, length),
		Right: make([]float64, length),
	}

	pos := 0
	carry := 0.0
	for i, s := range segs {
		span := 0
		if i == len(segs)-1 {
			span = length - pos // last segment absorbs any residual
		} else {
			ideal := float64(length)*float64(len(s))/float64(total) + carry
			span = int(math.Floor(ideal))
			carry = ideal - float64(span)
		}
		writeSegmentSpan(&buf, pos, span, s)
		pos += span
	}
	return buf
}

// writeSegmentSpan fills buf[pos:pos+span] by linearly interpolating over
// the segment's points.
func writeSegmentSpan(buf *AudioBuffer, pos, span int, s scope.Segment) {
	if span <= 0 {
		return
	}
	for k := 0; k < span; k++ {
		t := 0.0
		if span > 1 {
			t = float64(k) / float64(span-1)
		}
		p := sampleAt(s, t)
		buf.Left[pos+k] = p.X
		buf.Right[pos+k] = p.Y
	}
}

// sampleAt evaluates the polyline at normalized parameter t in [0, 1],
// uniform in point index.
func sampleAt(s scope.Segment, t float64) scope.Point {
	if len(s) == 1 {
		return s[0]
	}
	f := t * float64(len(s)-1)
	i := int(math.Floor(f))
	if i >= len(s)-1 {
		return s[len(s)-1]
	}
	return scope.Lerp(s[i], s[i+1], f-float64(i))
}

// flattenPoints serializes segments into one interleaved
// [x0,y0,x1,y1,...] stream for points-mode consumption.
func flattenPoints(segs []scope.Segment) []float64 {
	total := 0
	for _, s := range segs {
		total += len(s)
	}
	out := make([]float64, 0, total*2)
	for _, s := range segs {
		for _, p := range s {
			out = append(out, p.X, p.Y)
		}
	}
	return out
}
