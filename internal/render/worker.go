package render

import (
	"github.com/olivier-w/oscil/internal/beam"
	"github.com/olivier-w/oscil/internal/phosphor"
)

// Request is one render tick: an analyser snapshot plus the live parameter
// values to apply for this pass. The samples slice transfers to the worker.
type Request struct {
	Samples     [][2]float64 // stereo frames, X left / Y right
	Cols, Rows  int          // terminal cells available for the scope
	Persistence float64
	Beam        beam.Params
}

// Worker owns the physics simulator and the persistence compositor and
// turns analyser snapshots into terminal frames. It runs on its own clock:
// requests are accepted only while idle, so a slow pass drops ticks instead
// of queueing them.
type Worker struct {
	req chan Request
	out chan string

	sim     *beam.Simulator
	comp    *phosphor.Compositor
	braille *Braille
}

func NewWorker(params beam.Params) *Worker {
	w := &Worker{
		req:     make(chan Request),
		out:     make(chan string, 1),
		sim:     beam.NewSimulator(params),
		comp:    phosphor.NewCompositor(2, 4),
		braille: NewBraille(),
	}
	go w.run()
	return w
}

// TryRequest hands a render request to the worker if it is idle. Returns
// false when the previous pass is still in flight; the caller skips the
// tick and tries again on the next one.
func (w *Worker) TryRequest(r Request) bool {
	select {
	case w.req <- r:
		return true
	default:
		return false
	}
}

// Frames returns the channel of rendered terminal frames, one per accepted
// request.
func (w *Worker) Frames() <-chan string {
	return w.out
}

// Close stops the worker. No calls may follow.
func (w *Worker) Close() {
	close(w.req)
}

func (w *Worker) run() {
	for r := range w.req {
		w.out <- w.render(r)
	}
}

func (w *Worker) render(r Request) string {
	w.sim.SetParams(r.Beam)

	xs := make([]float64, len(r.Samples))
	ys := make([]float64, len(r.Samples))
	for i, f := range r.Samples {
		xs[i] = f[0]
		ys[i] = f[1]
	}
	tr := w.sim.Run(xs, ys)

	dw, dh := DotSize(r.Cols, r.Rows)
	w.comp.ClearWithPersistence(r.Persistence, dw, dh)
	w.comp.RenderTrace(tr.Points, tr.Speeds, r.Beam.Dimming)

	return w.braille.Render(w.comp.Frame(), dw, dh)
}
