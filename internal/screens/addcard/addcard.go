// Package addcard is the form for adding cards to the collection.
package addcard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/cardclient"
	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/suggest"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/ui/theme"
)

// Suggester proposes a meaning and note for a term.
type Suggester interface {
	Suggest(ctx context.Context, term string) (suggest.Suggestion, error)
}

const (
	fieldTerm = iota
	fieldMeaning
	fieldNote
	fieldCount
)

type savedMsg struct {
	card cards.Card
	err  error
}

type suggestedMsg struct {
	term       string
	suggestion suggest.Suggestion
	err        error
}

// AddCardScreen collects a term, meaning and optional note.
type AddCardScreen struct {
	store     cards.Store
	suggester Suggester

	fields [fieldCount]components.TextInput
	focus  int

	saving     bool
	suggesting bool
	status     string
	statusErr  bool
	added      int
}

var _ screen.Screen = (*AddCardScreen)(nil)
var _ screen.KeyHintProvider = (*AddCardScreen)(nil)

// New creates the form. suggester may be nil.
func New(store cards.Store, suggester Suggester) *AddCardScreen {
	s := &AddCardScreen{store: store, suggester: suggester}
	s.fields[fieldTerm] = components.NewTextInput("Term", "ねこ", cards.MaxTermLen)
	s.fields[fieldMeaning] = components.NewTextInput("Meaning", "cat", cards.MaxMeaningLen)
	s.fields[fieldNote] = components.NewTextInput("Note", "example sentence or reading", cards.MaxNoteLen)
	s.fields[fieldNote].Optional = true
	return s
}

func (s *AddCardScreen) Init() tea.Cmd {
	return s.setFocus(fieldTerm)
}

func (s *AddCardScreen) Title() string {
	return "Add Card"
}

func (s *AddCardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Save"},
	}
	if s.suggester != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Suggest"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *AddCardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		return s.handleSaved(msg)

	case suggestedMsg:
		return s.handleSuggested(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			return s.save()
		case "ctrl+s":
			return s.suggest()
		}
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *AddCardScreen) setFocus(i int) tea.Cmd {
	for j := range s.fields {
		s.fields[j].Blur()
	}
	s.focus = i
	return s.fields[i].Focus()
}

func (s *AddCardScreen) values() (term, meaning, note string) {
	return cards.Normalize(
		s.fields[fieldTerm].Value(),
		s.fields[fieldMeaning].Value(),
		s.fields[fieldNote].Value(),
	)
}

func (s *AddCardScreen) setStatus(msg string, isErr bool) {
	s.status = msg
	s.statusErr = isErr
}

func (s *AddCardScreen) save() (screen.Screen, tea.Cmd) {
	if s.saving {
		return s, nil
	}
	term, meaning, note := s.values()
	if err := cards.Validate(term, meaning, note); err != nil {
		s.setStatus(err.Error(), true)
		switch {
		case errors.Is(err, cards.ErrEmptyTerm):
			return s, s.setFocus(fieldTerm)
		case errors.Is(err, cards.ErrEmptyMeaning):
			return s, s.setFocus(fieldMeaning)
		}
		return s, nil
	}

	s.saving = true
	s.setStatus("Saving…", false)
	store := s.store
	return s, func() tea.Msg {
		c, err := store.Create(context.Background(), term, meaning, note)
		return savedMsg{card: c, err: err}
	}
}

func (s *AddCardScreen) handleSaved(msg savedMsg) (screen.Screen, tea.Cmd) {
	s.saving = false
	if msg.err != nil {
		s.setStatus(saveErrorText(msg.err), true)
		return s, nil
	}

	s.added++
	for i := range s.fields {
		s.fields[i].Reset()
	}
	s.setStatus(fmt.Sprintf("Saved %s (%s)", msg.card.Term, msg.card.Meaning), false)
	return s, tea.Batch(s.setFocus(fieldTerm), screen.CollectionChanged)
}

func saveErrorText(err error) string {
	var se *cardclient.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return "Not saved: " + se.Message
	}
	return "Not saved: " + screen.LoadErrorText(err)
}

func (s *AddCardScreen) suggest() (screen.Screen, tea.Cmd) {
	if s.suggester == nil {
		s.setStatus("No LLM provider configured", true)
		return s, nil
	}
	if s.suggesting {
		return s, nil
	}
	term, _, _ := s.values()
	if term == "" {
		s.setStatus(cards.ErrEmptyTerm.Error(), true)
		return s, s.setFocus(fieldTerm)
	}

	s.suggesting = true
	s.setStatus("Asking for a suggestion…", false)
	sg := s.suggester
	return s, func() tea.Msg {
		sug, err := sg.Suggest(context.Background(), term)
		return suggestedMsg{term: term, suggestion: sug, err: err}
	}
}

func (s *AddCardScreen) handleSuggested(msg suggestedMsg) (screen.Screen, tea.Cmd) {
	s.suggesting = false
	if term, _, _ := s.values(); term != msg.term {
		// The term changed while waiting.
		s.setStatus("", false)
		return s, nil
	}
	if msg.err != nil {
		s.setStatus("Suggestion failed: "+msg.err.Error(), true)
		return s, nil
	}

	s.fields[fieldMeaning].SetValue(msg.suggestion.Meaning)
	if strings.TrimSpace(s.fields[fieldNote].Value()) == "" {
		s.fields[fieldNote].SetValue(msg.suggestion.Note)
	}
	s.setStatus("Suggestion filled in. Edit it or press Enter to save.", false)
	return s, s.setFocus(fieldMeaning)
}

func (s *AddCardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	for i := range s.fields {
		b.WriteString(s.fields[i].View())
		b.WriteString("\n\n")
	}

	term, meaning, note := s.values()
	b.WriteString(components.Button("Save", cards.Validate(term, meaning, note) == nil && !s.saving))

	if s.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if s.statusErr {
			style = theme.Incorrect
		}
		b.WriteString("\n\n" + style.Render(s.status))
	}
	if s.added > 0 {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("%d added this visit", s.added)))
	}

	form := lipgloss.NewStyle().Width(cw).Render(b.String())
	return components.Centered(form, width, height)
}
