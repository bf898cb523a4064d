package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return true
	}
	return false
}

func helpText(demo bool) string {
	if demo {
		return "tab shape · o order · m resample · [/] spacing · -/= freq · ,/. persist · r/R rotate · n noise · p preview · space pause · ↑/↓ vol · s png · w wav · q quit"
	}
	return "space pause · ,/. persist · n noise · ↑/↓ vol · q quit"
}
