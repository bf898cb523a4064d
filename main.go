package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/oscil/internal/audio"
	"github.com/olivier-w/oscil/internal/pipeline"
	"github.com/olivier-w/oscil/internal/source"
	"github.com/olivier-w/oscil/internal/ui"
)

func main() {
	if len(os.Args) < 2 {
		runDemo()
		return
	}
	runFile(os.Args[1])
}

// runDemo drives the scope from built-in shape sources.
func runDemo() {
	settings := pipeline.DefaultSettings()
	proc := pipeline.NewProcessor(settings)

	player, err := audio.NewPlayer(int(settings.SampleRate))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	defer player.Close()

	model := ui.NewDemo(proc, player, settings)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runFile plays a stereo audio file as the X/Y deflection signal.
func runFile(path string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is a directory\n", path)
		os.Exit(1)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !source.IsSupportedExt(ext) {
		fmt.Fprintf(os.Stderr, "Error: unsupported format %s (supported: %s)\n", ext, source.SupportedExtsList())
		os.Exit(1)
	}

	stream, err := source.OpenAudioFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer stream.Close()

	player, err := audio.NewStreamPlayer(stream)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	defer player.Close()

	meta := source.ReadMetadata(path)
	model := ui.NewFile(player, meta)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
