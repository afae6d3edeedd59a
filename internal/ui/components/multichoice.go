package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/tango/internal/ui/theme"
)

// MultiChoice shows a prompt over numbered options and tracks which one is
// highlighted. Scoring is left to the caller.
type MultiChoice struct {
	Prompt   string
	Options  []string
	Selected int
}

func NewMultiChoice(prompt string, options []string) MultiChoice {
	return MultiChoice{Prompt: prompt, Options: options}
}

// HandleKey moves the highlight and reports whether the key submits it.
// Arrows wrap around; a digit highlights and submits that option at once.
func (m *MultiChoice) HandleKey(key string) (submit bool) {
	n := len(m.Options)
	if n == 0 {
		return false
	}
	switch key {
	case "up", "k":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j":
		m.Selected = (m.Selected + 1) % n
	case "enter":
		return true
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < n {
			m.Selected = int(key[0] - '1')
			return true
		}
	}
	return false
}

func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Term.Render(m.Prompt))
	b.WriteString("\n\n")
	for i, opt := range m.Options {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render(fmt.Sprintf("▸ %d)  %s", i+1, opt)))
		} else {
			b.WriteString(theme.Unselected.Render(fmt.Sprintf("  %d)  %s", i+1, opt)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
