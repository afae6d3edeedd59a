// Package library lists the card collection, newest first.
package library

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/ui/theme"
)

type cardsLoadedMsg struct {
	cards []cards.Card
	err   error
}

// LibraryScreen shows every card with its meaning. Enter expands the
// selected card's note.
type LibraryScreen struct {
	store    cards.Store
	cards    []cards.Card
	selected int
	offset   int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)

// New creates a new LibraryScreen.
func New(store cards.Store) *LibraryScreen {
	return &LibraryScreen{
		store:    store,
		expanded: make(map[int]bool),
	}
}

func (s *LibraryScreen) Init() tea.Cmd {
	store := s.store
	return func() tea.Msg {
		pool, err := store.FetchAll(context.Background())
		return cardsLoadedMsg{cards: pool, err: err}
	}
}

func (s *LibraryScreen) Title() string {
	return "Library"
}

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Note"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = screen.LoadErrorText(msg.err)
			return s, nil
		}
		s.cards = cards.NewestFirst(msg.cards)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.cards)-1 {
				s.selected++
			}
		case "home", "g":
			s.selected = 0
		case "end", "G":
			if len(s.cards) > 0 {
				s.selected = len(s.cards) - 1
			}
		case "enter":
			if len(s.cards) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

// scroll keeps the selected row inside a window of rows lines.
func (s *LibraryScreen) scroll(rows int) {
	if rows < 1 {
		rows = 1
	}
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}
}

func (s *LibraryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n" + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading cards...")
	}
	if len(s.cards) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No cards yet. Add your first word!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(countLabel(len(s.cards)))))
	b.WriteString("\n\n")

	// Header, count line and a spare line for an expanded note.
	s.scroll(height - 5)
	end := s.offset + height - 5
	if end > len(s.cards) {
		end = len(s.cards)
	}

	for i := s.offset; i < end; i++ {
		c := s.cards[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		termStyle := theme.Term
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
			termStyle = termStyle.Underline(true)
		}
		line := prefix + termStyle.Render(c.Term) + style.Render("  "+c.Meaning)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")

		if s.expanded[i] {
			note := c.Note
			if note == "" {
				note = "No note"
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Render("    "+note)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func countLabel(n int) string {
	if n == 1 {
		return "1 card"
	}
	return fmt.Sprintf("%d cards", n)
}
