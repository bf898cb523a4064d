// Package audio plays the scope's deflection signal through the system
// audio device and taps it for the renderer.
package audio

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	channelCount = 2
	bitDepth     = 2 // 16-bit = 2 bytes
)

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
	otoRate      int
)

// initOto creates the process-wide oto context. The first caller fixes the
// sample rate for the life of the process.
func initOto(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			otoRate = sampleRate
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// Player feeds stereo scope buffers to the audio device. In frequency mode
// the current buffer loops until replaced; in points mode the interleaved
// point stream loops the same way, consumed sample-by-sample. Swapping in
// a new buffer is atomic with respect to the device reader.
type Player struct {
	otoCtx    *oto.Context
	otoPlayer *oto.Player
	src       *loopSource
	tap       *Tap

	mu     sync.Mutex
	volume float64
	paused bool
	closed bool
}

// NewPlayer opens the audio device at the given sample rate and starts
// playing silence until a buffer arrives.
func NewPlayer(sampleRate int) (*Player, error) {
	ctx, err := initOto(sampleRate)
	if err != nil {
		return nil, err
	}

	tap := NewTap(sampleRate / 4)
	p := &Player{
		otoCtx: ctx,
		src:    &loopSource{tap: tap},
		tap:    tap,
		volume: 0.8,
	}
	p.otoPlayer = ctx.NewPlayer(p.src)
	p.otoPlayer.SetVolume(p.volume)
	p.otoPlayer.Play()
	return p, nil
}

// Tap returns the analyser tap recording what is being played.
func (p *Player) Tap() *Tap { return p.tap }

// SetLoop replaces the looping stereo signal. Ownership of both channels
// transfers to the player.
func (p *Player) SetLoop(left, right []float64) {
	p.src.setLoop(encodePCM(left, right))
}

// SetPointStream replaces the loop with an interleaved [x0,y0,...] point
// stream played sample-by-sample.
func (p *Player) SetPointStream(points []float64) {
	p.src.setLoop(encodeInterleavedPCM(points))
}

// Silence drops the current loop.
func (p *Player) Silence() {
	p.src.setLoop(nil)
}

// TogglePause toggles between play and pause.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.otoPlayer.Play()
	} else {
		p.otoPlayer.Pause()
	}
	p.paused = !p.paused
}

// Paused returns whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Volume returns the current volume (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// AdjustVolume adjusts volume by delta, clamped to 0.0 - 1.0.
func (p *Player) AdjustVolume(delta float64) {
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
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.otoPlayer.Pause()
}

// loopSource is an endless io.Reader over the current PCM loop. It emits
// silence while no loop is set and records every played frame to the tap.
type loopSource struct {
	mu  sync.Mutex
	pcm []byte
	pos int
	tap *Tap
}

func (s *loopSource) setLoop(pcm []byte) {
	s.mu.Lock()
	s.pcm = pcm
	s.pos = 0
	s.mu.Unlock()
}

const frameBytes = channelCount * bitDepth

func (s *loopSource) Read(p []byte) (int, error) {
	// Whole frames only, so a loop never splits a sample pair.
	n := len(p) - len(p)%frameBytes
	if n == 0 {
		return 0, nil
	}

	s.mu.Lock()
	if len(s.pcm) == 0 {
		s.mu.Unlock()
		for i := 0; i < n; i++ {
			p[i] = 0
		}
		return n, nil
	}
	for i := 0; i < n; i += frameBytes {
		copy(p[i:i+frameBytes], s.pcm[s.pos:s.pos+frameBytes])
		s.pos += frameBytes
		if s.pos >= len(s.pcm) {
			s.pos = 0
		}
	}
	s.mu.Unlock()

	if s.tap != nil {
		s.tap.Push(decodePCM(p[:n]))
	}
	return n, nil
}

var _ io.Reader = (*loopSource)(nil)

// encodePCM converts dual-channel float samples in [-1, 1] to interleaved
// 16-bit LE stereo. Channel lengths are matched to the shorter one.
func encodePCM(left, right []float64) []byte {
	n := min(len(left), len(right))
	out := make([]byte, n*frameBytes)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(sampleToInt16(left[i])))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(sampleToInt16(right[i])))
	}
	return out
}

// encodeInterleavedPCM converts an interleaved [x0,y0,...] stream.
func encodeInterleavedPCM(points []float64) []byte {
	n := len(points) / 2
	out := make([]byte, n*frameBytes)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(sampleToInt16(points[i*2])))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(sampleToInt16(points[i*2+1])))
	}
	return out
}

func decodePCM(pcm []byte) [][2]float64 {
	n := len(pcm) / frameBytes
	out := make([][2]float64, n)
	for i := 0; i < n; i++ {
		l := int16(binary.LittleEndian.Uint16(pcm[i*4:]))
		r := int16(binary.LittleEndian.Uint16(pcm[i*4+2:]))
		out[i] = [2]float64{float64(l) / 32768.0, float64(r) / 32768.0}
	}
	return out
}

func sampleToInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}
