package audio

import "sync"

// Tap records the most recently played stereo frames so the renderer can
// simulate the beam from exactly what the listener hears. Thread-safe: the
// playback reader writes, the UI snapshots.
type Tap struct {
	mu    sync.Mutex
	buf   [][2]float64
	next  int
	count int
}

// NewTap creates a tap holding up to size stereo frames.
func NewTap(size int) *Tap {
	if size < 1 {
		size = 1
	}
	return &Tap{buf: make([][2]float64, size)}
}

// Push appends frames, overwriting the oldest when full.
func (t *Tap) Push(frames [][2]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, f := range frames {
		t.buf[t.next] = f
		t.next = (t.next + 1) % len(t.buf)
	}
	t.count += len(frames)
	if t.count > len(t.buf) {
		t.count = len(t.buf)
	}
}

// Snapshot returns up to n of the most recent frames in chronological
// order. The returned slice is owned by the caller.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n > t.count {
		n = t.count
	}
	if n <= 0 {
		return nil
	}
	out := make([][2]float64, n)
	start := (t.next - n + len(t.buf)) % len(t.buf)
	for i := 0; i < n; i++ {
		out[i] = t.buf[(start+i)%len(t.buf)]
	}
	return out
}

// Clear resets the tap.
func (t *Tap) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next = 0
	t.count = 0
}
