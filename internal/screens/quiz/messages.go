package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/cards"
)

// poolLoadedMsg carries a freshly fetched card pool.
type poolLoadedMsg struct {
	pool []cards.Card
	err  error
}

// tickMsg is one second of quiz time, armed for a specific run.
type tickMsg struct {
	gen uint64
}

// recordedMsg reports whether the finished quiz was stored.
type recordedMsg struct {
	err error
}

// tickCmd returns a 1-second tick for run gen.
func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}
