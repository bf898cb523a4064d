package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/oscil/internal/audio"
	"github.com/olivier-w/oscil/internal/beam"
	"github.com/olivier-w/oscil/internal/pipeline"
	"github.com/olivier-w/oscil/internal/render"
	"github.com/olivier-w/oscil/internal/scope"
	"github.com/olivier-w/oscil/internal/source"
	"github.com/olivier-w/oscil/internal/util"
)

// Model is the Bubbletea model orchestrating the scope. It owns timing:
// frame ticks feed the processor, render ticks feed the render worker with
// a strict single-in-flight discipline: a tick that lands while a render
// pass is outstanding is skipped, never queued.
type Model struct {
	demo  bool
	shape source.Shape
	phase float64

	processor   *pipeline.Processor
	settings    pipeline.Settings
	beamParams  beam.Params
	persistence float64

	worker *render.Worker
	tap    *audio.Tap
	player *audio.Player
	stream *audio.StreamPlayer
	meta   source.Metadata

	nextID   uint64
	latestID uint64
	last     pipeline.Result
	haveLast bool

	scopeView string
	inFlight  bool

	pointsMeter springValue
	spin        spinner.Model
	statusMsg   string
	statusAt    time.Time

	width    int
	height   int
	quitting bool
}

// NewDemo creates the model for built-in shape sources.
func NewDemo(proc *pipeline.Processor, player *audio.Player, settings pipeline.Settings) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		demo:        true,
		processor:   proc,
		settings:    settings,
		beamParams:  beam.DefaultParams(),
		persistence: 0.55,
		worker:      render.NewWorker(beam.DefaultParams()),
		tap:         player.Tap(),
		player:      player,
		pointsMeter: newSpringValue(30),
		spin:        sp,
	}
}

// NewFile creates the model for audio-file XY playback.
func NewFile(stream *audio.StreamPlayer, meta source.Metadata) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		demo:        false,
		beamParams:  beam.DefaultParams(),
		persistence: 0.55,
		worker:      render.NewWorker(beam.DefaultParams()),
		tap:         stream.Tap(),
		stream:      stream,
		meta:        meta,
		pointsMeter: newSpringValue(30),
		spin:        sp,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{renderTickCmd(), m.spin.Tick, tea.SetWindowTitle("oscil")}
	if m.demo {
		cmds = append(cmds, frameTickCmd(), waitResult(m.processor))
	} else {
		cmds = append(cmds, checkDone(m.stream))
	}
	return tea.Batch(cmds...)
}

func waitResult(p *pipeline.Processor) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-p.Results()
		if !ok {
			return nil
		}
		return resultMsg(r)
	}
}

func waitScopeFrame(w *render.Worker) tea.Cmd {
	return func() tea.Msg {
		return scopeFrameMsg(<-w.Frames())
	}
}

func checkDone(s *audio.StreamPlayer) tea.Cmd {
	return func() tea.Msg {
		<-s.Done()
		return playbackEndedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameTickMsg:
		if !m.demo {
			return m, nil
		}
		cmd := m.submitShape()
		return m, tea.Batch(frameTickCmd(), cmd)

	case renderTickMsg:
		if m.statusMsg != "" && time.Since(m.statusAt) > 5*time.Second {
			m.statusMsg = ""
		}
		var cmds []tea.Cmd
		if !m.inFlight {
			cols, rows := m.scopeSize()
			req := render.Request{
				Samples:     m.tap.Snapshot(2048),
				Cols:        cols,
				Rows:        rows,
				Persistence: m.persistence,
				Beam:        m.beamParams,
			}
			if m.worker.TryRequest(req) {
				m.inFlight = true
				cmds = append(cmds, waitScopeFrame(m.worker))
			}
		}
		cmds = append(cmds, renderTickCmd())
		return m, tea.Batch(cmds...)

	case scopeFrameMsg:
		m.scopeView = string(msg)
		m.inFlight = false
		return m, nil

	case resultMsg:
		r := pipeline.Result(msg)
		if r.FrameID < m.latestID {
			// Superseded mid-flight; expected, not an error.
			return m, waitResult(m.processor)
		}
		m.last = r
		m.haveLast = true
		switch r.Mode {
		case pipeline.ModePoints:
			m.player.SetPointStream(r.Points)
		default:
			m.player.SetLoop(r.Audio.Left, r.Audio.Right)
		}
		return m, waitResult(m.processor)

	case playbackEndedMsg:
		m.quitting = true
		m.shutdown()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case fileSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			m.statusMsg = "saved " + msg.path
		}
		m.statusAt = time.Now()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// submitShape pushes the current shape to the processor. Static shapes are
// submitted once; animated ones every tick with a fresh id.
func (m *Model) submitShape() tea.Cmd {
	animated := m.shape == source.ShapeLissajous || m.shape == source.ShapeStar
	if m.latestID > 0 && !animated {
		return nil
	}
	if animated {
		m.phase += 0.06
	}
	m.nextID++
	m.latestID = m.nextID
	m.processor.Submit(scope.Frame{
		ID:       m.nextID,
		Segments: source.Generate(m.shape, m.phase),
	})
	return nil
}

func (m *Model) apply(patch pipeline.Patch) {
	m.settings = m.settings.Merge(patch)
	if m.processor != nil {
		m.processor.Update(patch)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		m.shutdown()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}

	switch msg.String() {
	case " ":
		if m.demo {
			m.player.TogglePause()
		} else {
			m.stream.TogglePause()
		}
	case "up", "k":
		m.adjustVolume(0.05)
	case "down", "j":
		m.adjustVolume(-0.05)
	case ",":
		m.persistence = clampF(m.persistence-0.1, 0, 0.98)
	case ".":
		m.persistence = clampF(m.persistence+0.1, 0, 0.98)
	case "n":
		m.beamParams.NoiseAmount = nextNoise(m.beamParams.NoiseAmount)
	}

	if !m.demo {
		return m, nil
	}

	switch msg.String() {
	case "tab":
		m.shape = m.shape.Next()
		m.latestID = 0 // force resubmission even for static shapes
	case "o":
		v := !m.settings.OptimizeOrder
		m.apply(pipeline.Patch{OptimizeOrder: &v})
	case "b":
		v := !m.settings.TrackBeamPosition
		m.apply(pipeline.Patch{TrackBeamPosition: &v})
	case "p":
		v := !m.settings.PreviewAfterResample
		m.apply(pipeline.Patch{PreviewAfterResample: &v})
	case "m":
		v := nextResample(m.settings.Resample)
		m.apply(pipeline.Patch{Resample: &v})
	case "f":
		v := nextMode(m.settings.Mode)
		m.apply(pipeline.Patch{Mode: &v})
	case "[":
		v := clampF(m.settings.PointSpacing*0.8, 0.001, 0.2)
		m.apply(pipeline.Patch{PointSpacing: &v})
	case "]":
		v := clampF(m.settings.PointSpacing*1.25, 0.001, 0.2)
		m.apply(pipeline.Patch{PointSpacing: &v})
	case "-":
		v := clampF(m.settings.Frequency-10, 20, 500)
		m.apply(pipeline.Patch{Frequency: &v})
	case "=", "+":
		v := clampF(m.settings.Frequency+10, 20, 500)
		m.apply(pipeline.Patch{Frequency: &v})
	case "r":
		v := m.settings.Rotation - 15
		m.apply(pipeline.Patch{Rotation: &v})
	case "R":
		v := m.settings.Rotation + 15
		m.apply(pipeline.Patch{Rotation: &v})
	case "s":
		if m.haveLast {
			pv := m.last.Preview
			return m, func() tea.Msg {
				path := fmt.Sprintf("oscil-%s.png", time.Now().Format("150405"))
				return fileSavedMsg{path: path, err: render.SavePNG(path, pv, 800, 800)}
			}
		}
	case "w":
		if m.haveLast && m.last.Mode == pipeline.ModeFrequency {
			buf := m.last.Audio
			rate := int(m.settings.SampleRate)
			return m, func() tea.Msg {
				path := fmt.Sprintf("oscil-%s.wav", time.Now().Format("150405"))
				return fileSavedMsg{path: path, err: audio.ExportWAV(path, buf.Left, buf.Right, rate)}
			}
		}
	}
	return m, nil
}

func (m *Model) adjustVolume(delta float64) {
	if m.demo {
		m.player.AdjustVolume(delta)
	} else {
		m.stream.AdjustVolume(delta)
	}
}

func (m *Model) shutdown() {
	if m.demo {
		m.processor.Close()
		m.player.Close()
	} else {
		m.stream.Close()
	}
	m.worker.Close()
}

// scopeSize returns the terminal area reserved for the trace.
func (m Model) scopeSize() (int, int) {
	w := m.width
	if w < 30 {
		w = 50
	}
	h := m.height
	if h < 12 {
		h = 24
	}
	return w - 4, h - 7
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := headerStyle.Render("oscil")
	sub := ""
	if m.demo {
		sub = readoutStyle.Render("shape: ") + valueStyle.Render(m.shape.Name())
	} else {
		title := m.meta.Title
		if m.meta.Artist != "" {
			title = m.meta.Artist + " - " + title
		}
		sub = titleStyle.Render(title)
	}

	scopeArea := m.scopeView
	if scopeArea == "" {
		scopeArea = "  " + m.spin.View() + " warming up phosphor..."
	}

	status := m.statusLine()
	help := helpStyle.Render(helpText(m.demo))

	out := "\n  " + header + "   " + sub + "\n\n"
	out += scopeArea + "\n"
	out += "  " + status + "\n"
	if m.statusMsg != "" {
		out += "  " + helpStyle.Render(m.statusMsg) + "\n"
	}
	out += "  " + help + "\n"
	return out
}

func (m Model) statusLine() string {
	paused := false
	vol := 0.0
	if m.demo {
		paused = m.player.Paused()
		vol = m.player.Volume()
	} else {
		paused = m.stream.Paused()
		vol = m.stream.Volume()
	}

	icon := "▶"
	if paused {
		icon = "❚❚"
	}

	if !m.demo {
		return readoutStyle.Render(fmt.Sprintf("%s  persist %.2f  noise %.2f  vol %d%%",
			icon, m.persistence, m.beamParams.NoiseAmount, int(vol*100)))
	}

	pts := 0
	if m.haveLast {
		if m.last.Mode == pipeline.ModePoints {
			pts = len(m.last.Points) / 2
		} else {
			pts = m.last.Audio.Len()
		}
	}
	smoothed := int(m.pointsMeter.step(float64(pts)) + 0.5)

	return readoutStyle.Render(fmt.Sprintf("%s  %s  %s  %s  spacing %.3f  rot %s  persist %.2f  %d smp  vol %d%%",
		icon,
		m.settings.Mode,
		util.FormatHz(m.settings.Frequency),
		m.settings.Resample,
		m.settings.PointSpacing,
		util.FormatDegrees(m.settings.Rotation),
		m.persistence,
		smoothed,
		int(vol*100)))
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nextResample(r pipeline.ResampleMode) pipeline.ResampleMode {
	switch r {
	case pipeline.ResampleOff:
		return pipeline.ResampleUniform
	case pipeline.ResampleUniform:
		return pipeline.ResampleProportional
	default:
		return pipeline.ResampleOff
	}
}

func nextMode(m pipeline.Mode) pipeline.Mode {
	if m == pipeline.ModeFrequency {
		return pipeline.ModePoints
	}
	return pipeline.ModeFrequency
}

func nextNoise(n float64) float64 {
	switch {
	case n == 0:
		return 0.01
	case n < 0.02:
		return 0.03
	default:
		return 0
	}
}
