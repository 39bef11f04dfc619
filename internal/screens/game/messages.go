package game

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/imodel/internal/selection"
)

// frameMsg carries one animation frame from the engine's ticker.
type frameMsg struct {
	frame  selection.Frame
	ticker *selection.Ticker
}

// tickerStoppedMsg is sent once a ticker's channel has closed.
type tickerStoppedMsg struct {
	ticker *selection.Ticker
}

// waitFrame blocks until the ticker publishes or stops.
func waitFrame(t *selection.Ticker) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-t.C
		if !ok {
			return tickerStoppedMsg{ticker: t}
		}
		return frameMsg{frame: f, ticker: t}
	}
}
