package components

import (
	"fmt"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and a rune counter.
type TextInput struct {
	Label    string
	Model    textinput.Model
	MaxRunes int
	Optional bool
}

// NewTextInput creates a new labelled text input. The input starts blurred.
func NewTextInput(label, placeholder string, maxRunes int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = maxRunes
	ti.SetWidth(40)

	return TextInput{
		Label:    label,
		Model:    ti,
		MaxRunes: maxRunes,
	}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input and the counter.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10)
	if t.Focused() {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}
	label := t.Label
	if t.Optional {
		label += "?"
	}

	n := utf8.RuneCountInString(t.Model.Value())
	counterStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.MaxRunes > 0 && n >= t.MaxRunes {
		counterStyle = counterStyle.Foreground(theme.Error)
	}
	counter := ""
	if t.MaxRunes > 0 {
		counter = counterStyle.Render(fmt.Sprintf(" %d/%d", n, t.MaxRunes))
	}

	return labelStyle.Render(label) + t.Model.View() + counter
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
