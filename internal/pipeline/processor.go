// Package pipeline turns raw segment frames into audio-ready buffers and
// transferable previews on a repeating real-time schedule.
package pipeline

import "github.com/olivier-w/oscil/internal/scope"

// Result is one processed frame. FrameID echoes the submitted frame's id;
// consumers compare it to the newest submitted id and discard stale
// results. Buffers inside a Result belong to the receiver.
type Result struct {
	FrameID  uint64
	Mode     Mode
	Audio    AudioBuffer // frequency mode
	Points   []float64   // points mode, interleaved x,y
	Preview  Preview
	Segments int // segment count after processing
}

type submitMsg struct{ frame scope.Frame }
type patchMsg struct{ patch Patch }
type resetMsg struct{}

// Processor is the frame-processing worker. It owns all of its state (last
// segments, last frame id, last beam position, current settings) and
// interacts with the rest of the program only through messages, processed
// strictly in arrival order. Submitted frames transfer ownership: the
// sender must not touch a frame after handing it off.
type Processor struct {
	msgs    chan any
	results chan Result

	settings Settings
	lastSegs []scope.Segment
	lastID   uint64
	lastBeam *scope.Point
	hasFrame bool
}

// NewProcessor starts the worker goroutine with the given initial settings.
func NewProcessor(s Settings) *Processor {
	p := &Processor{
		msgs:     make(chan any, 64),
		results:  make(chan Result, 8),
		settings: s,
	}
	go p.run()
	return p
}

// Submit hands a frame to the worker. Fire-and-forget; no reply is awaited.
func (p *Processor) Submit(f scope.Frame) {
	p.msgs <- submitMsg{frame: f}
}

// Update merges a settings patch. If a frame has been processed before, it
// is reprocessed end-to-end under the new settings so static content
// responds to live controls without new input.
func (p *Processor) Update(patch Patch) {
	p.msgs <- patchMsg{patch: patch}
}

// Reset clears all cached state.
func (p *Processor) Reset() {
	p.msgs <- resetMsg{}
}

// Results returns the channel of processed frames.
func (p *Processor) Results() <-chan Result {
	return p.results
}

// Close stops the worker. No calls may follow.
func (p *Processor) Close() {
	close(p.msgs)
}

func (p *Processor) run() {
	for msg := range p.msgs {
		switch m := msg.(type) {
		case submitMsg:
			p.process(m.frame)
		case patchMsg:
			p.settings = p.settings.Merge(m.patch)
			if p.hasFrame {
				p.process(scope.Frame{ID: p.lastID, Segments: p.lastSegs})
			}
		case resetMsg:
			p.lastSegs = nil
			p.lastID = 0
			p.lastBeam = nil
			p.hasFrame = false
		}
	}
}

// process runs one frame through the pipeline:
// clean → reorder → resample → preview → rotate → emit.
func (p *Processor) process(f scope.Frame) {
	segs := scope.Clean(f.Segments)
	if len(segs) == 0 {
		// Normal while content is still being produced. No output, no
		// state change.
		return
	}

	// Cache the raw (cleaned) input so a settings change can replay it.
	p.lastSegs = segs
	p.lastID = f.ID
	p.hasFrame = true

	s := p.settings
	if s.OptimizeOrder {
		var start *scope.Point
		if s.TrackBeamPosition {
			start = p.lastBeam
		}
		segs = scope.OptimizeOrder(segs, start)
	}

	var pv Preview
	if !s.PreviewAfterResample {
		pv = MakePreview(segs)
	}

	switch s.Resample {
	case ResampleUniform:
		segs = scope.ResampleUniform(segs, s.PointSpacing)
	case ResampleProportional:
		segs = scope.ResampleProportional(segs, s.PointSpacing)
	}

	if s.PreviewAfterResample {
		pv = MakePreview(segs)
	}

	segs = scope.Rotate(segs, s.Rotation)

	if s.TrackBeamPosition {
		last := segs[len(segs)-1]
		end := last[len(last)-1]
		p.lastBeam = &end
	}

	res := Result{
		FrameID:  f.ID,
		Mode:     s.Mode,
		Preview:  pv,
		Segments: len(segs),
	}
	switch s.Mode {
	case ModePoints:
		res.Points = flattenPoints(segs)
	default:
		res.Audio = buildFrequencyBuffer(segs, s.SampleRate, s.Frequency)
	}

	// Never block the worker on a slow consumer; an undeliverable result
	// is stale anyway.
	select {
	case p.results <- res:
	default:
	}
}
