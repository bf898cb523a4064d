package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/oscil/internal/pipeline"
)

type frameTickMsg time.Time
type renderTickMsg time.Time
type resultMsg pipeline.Result
type scopeFrameMsg string
type playbackEndedMsg struct{}
type fileSavedMsg struct {
	path string
	err  error
}

// frameTickCmd paces content-source frame submission.
func frameTickCmd() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// renderTickCmd paces scope render requests (~30 fps).
func renderTickCmd() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg {
		return renderTickMsg(t)
	})
}
