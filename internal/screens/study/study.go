// Package study is the flip-card review screen.
package study

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/random"
	"github.com/abhisek/tango/internal/review"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/ui/theme"
)

type sessionLoadedMsg struct {
	pool    []cards.Card
	session *review.Session
	err     error
}

// StudyScreen walks the unlearned cards one at a time.
type StudyScreen struct {
	store  cards.Store
	ledger review.Ledger
	random func() random.Source

	pool    []cards.Card
	session *review.Session
	flipped bool
	loaded  bool
	errMsg  string
	status  string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New creates a new StudyScreen. rnd supplies the source used to shuffle.
func New(store cards.Store, ledger review.Ledger, rnd func() random.Source) *StudyScreen {
	if rnd == nil {
		rnd = random.NewRandom
	}
	return &StudyScreen{store: store, ledger: ledger, random: rnd}
}

// Init fetches a fresh pool and builds the session from it.
func (s *StudyScreen) Init() tea.Cmd {
	store, ledger := s.store, s.ledger
	return func() tea.Msg {
		ctx := context.Background()
		pool, err := store.FetchAll(ctx)
		if err != nil {
			return sessionLoadedMsg{err: err}
		}
		sess, err := review.New(ctx, pool, ledger)
		if err != nil {
			return sessionLoadedMsg{err: err}
		}
		return sessionLoadedMsg{pool: pool, session: sess}
	}
}

func (s *StudyScreen) Title() string {
	return "Study"
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.session == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.session.Empty() {
		if len(s.pool) == 0 {
			return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
		}
		return []layout.KeyHint{
			{Key: "R", Description: "Study again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Prev/Next"},
		{Key: "Space", Description: "Flip"},
		{Key: "M", Description: "Learned"},
		{Key: "S", Description: "Shuffle"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			slog.Error("failed to start study session", "error", msg.err)
			s.errMsg = screen.LoadErrorText(msg.err)
			return s, nil
		}
		s.pool = msg.pool
		s.session = msg.session
		return s, nil

	case tea.KeyMsg:
		if s.session == nil {
			return s, nil
		}
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *StudyScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	if s.session.Empty() {
		if (key == "r" || key == "R") && len(s.pool) > 0 {
			if err := s.session.ResetProgress(ctx, s.pool); err != nil {
				slog.Error("failed to reset progress", "error", err)
				s.status = "Could not reset progress"
				return s, nil
			}
			s.flipped = false
			s.status = ""
			return s, screen.CollectionChanged
		}
		return s, nil
	}

	switch key {
	case "right", "l", "n":
		_ = s.session.Advance()
		s.flipped = false
		s.status = ""
	case "left", "h", "p":
		_ = s.session.Retreat()
		s.flipped = false
		s.status = ""
	case "space", " ", "enter", "f":
		s.flipped = !s.flipped
	case "m", "M":
		card, _ := s.session.Current()
		if err := s.session.MarkMastered(ctx); err != nil {
			slog.Error("failed to mark card learned", "card", card.ID, "error", err)
			s.status = "Could not save progress"
			return s, nil
		}
		s.flipped = false
		s.status = fmt.Sprintf("Marked %s as learned", card.Term)
		return s, screen.CollectionChanged
	case "s", "S":
		s.session.Shuffle(s.random())
		s.flipped = false
		s.status = "Shuffled"
	}
	return s, nil
}

func (s *StudyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return components.Message(s.errMsg, true, width, height)
	}
	if !s.loaded {
		return components.Message("Loading cards...", false, width, height)
	}
	if len(s.pool) == 0 {
		return components.Message("No cards yet. Add some words first!", false, width, height)
	}

	cw := components.ContentWidth(width)

	if s.session.Empty() {
		content := theme.Correct.Render("All cards learned!") + "\n\n" +
			theme.Hint.Render("Press R to study them again")
		if s.status != "" {
			content += "\n\n" + theme.Incorrect.Render(s.status)
		}
		return components.Centered(components.Panel(content, cw), width, height)
	}

	card, _ := s.session.Current()
	counter := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d / %d", s.session.Position()+1, s.session.Len()))

	body := theme.Term.Render(card.Term)
	if s.flipped {
		body += "\n\n" + theme.Body.Render(card.Meaning)
		if card.Note != "" {
			body += "\n\n" + theme.Hint.Render(card.Note)
		}
	} else {
		body += "\n\n" + theme.Hint.Render("space to reveal")
	}

	content := counter + "\n\n" + components.Panel(body, cw)
	if s.status != "" {
		content += "\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.status)
	}
	return components.Centered(content, width, height)
}
