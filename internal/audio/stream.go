package audio

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// FrameReader streams decoded stereo frames, values in [-1, 1]. Returns
// io.EOF when the source is exhausted.
type FrameReader interface {
	ReadFrames(dst [][2]float64) (int, error)
	SampleRate() int
}

// StreamPlayer plays a finite stereo stream (an audio file) through the
// device while tapping it for the renderer. This is the oscilloscope-music
// path: the file's left/right channels become the X/Y deflection signal.
type StreamPlayer struct {
	otoCtx    *oto.Context
	otoPlayer *oto.Player
	src       *streamSource
	tap       *Tap

	mu     sync.Mutex
	volume float64
	paused bool
	closed bool
	done   chan struct{}
}

// NewStreamPlayer opens the device at the stream's sample rate and starts
// playback immediately.
func NewStreamPlayer(src FrameReader) (*StreamPlayer, error) {
	ctx, err := initOto(src.SampleRate())
	if err != nil {
		return nil, err
	}

	tap := NewTap(src.SampleRate() / 4)
	p := &StreamPlayer{
		otoCtx: ctx,
		src:    &streamSource{src: src, tap: tap},
		tap:    tap,
		volume: 0.8,
		done:   make(chan struct{}),
	}
	p.src.done = p.done
	p.otoPlayer = ctx.NewPlayer(p.src)
	p.otoPlayer.SetVolume(p.volume)
	p.otoPlayer.Play()
	return p, nil
}

// Tap returns the analyser tap.
func (p *StreamPlayer) Tap() *Tap { return p.tap }

// Done closes when the stream has been fully handed to the device.
func (p *StreamPlayer) Done() <-chan struct{} { return p.done }

// TogglePause toggles between play and pause.
func (p *StreamPlayer) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.otoPlayer.Play()
	} else {
		p.otoPlayer.Pause()
	}
	p.paused = !p.paused
}

// Paused reports whether playback is paused.
func (p *StreamPlayer) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Volume returns the current volume.
func (p *StreamPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// AdjustVolume adjusts volume by delta, clamped to 0.0 - 1.0.
func (p *StreamPlayer) AdjustVolume(delta float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := p.volume + delta
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
	p.otoPlayer.SetVolume(v)
}

// Close stops playback.
func (p *StreamPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.otoPlayer.Pause()
}

// streamSource adapts a FrameReader to the byte reader oto consumes.
type streamSource struct {
	src     FrameReader
	tap     *Tap
	frames  [][2]float64
	done    chan struct{}
	doneSet bool
	mu      sync.Mutex
}

func (s *streamSource) Read(p []byte) (int, error) {
	n := len(p) / frameBytes
	if n == 0 {
		return 0, nil
	}
	if cap(s.frames) < n {
		s.frames = make([][2]float64, n)
	}
	frames := s.frames[:n]

	read, err := s.src.ReadFrames(frames)
	if read > 0 {
		for i := 0; i < read; i++ {
			binary.LittleEndian.PutUint16(p[i*4:], uint16(sampleToInt16(frames[i][0])))
			binary.LittleEndian.PutUint16(p[i*4+2:], uint16(sampleToInt16(frames[i][1])))
		}
		s.tap.Push(frames[:read])
	}
	if err == io.EOF {
		s.signalDone()
		if read > 0 {
			err = nil
		}
	}
	return read * frameBytes, err
}

func (s *streamSource) signalDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.doneSet {
		s.doneSet = true
		close(s.done)
	}
}
