// Package history lists past quizzes.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/store"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
	"github.com/abhisek/tango/internal/ui/theme"
)

// Limit is how many recent quizzes are listed.
const Limit = 50

// Source provides the quiz history.
type Source interface {
	RecentQuizEvents(ctx context.Context, limit int) ([]store.QuizEventRecord, error)
	QuizStats(ctx context.Context) (store.QuizStats, error)
}

type loadedMsg struct {
	quizzes []store.QuizEventRecord
	stats   store.QuizStats
	err     error
}

// HistoryScreen shows overall quiz stats above a scrollable list of past
// quizzes, newest first.
type HistoryScreen struct {
	source  Source
	quizzes []store.QuizEventRecord
	stats   store.QuizStats
	loaded  bool
	err     error

	cursor int
	offset int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(source Source) *HistoryScreen {
	return &HistoryScreen{source: source}
}

func (s *HistoryScreen) Init() tea.Cmd {
	src := s.source
	return func() tea.Msg {
		ctx := context.Background()
		quizzes, err := src.RecentQuizEvents(ctx, Limit)
		if err != nil {
			return loadedMsg{err: err}
		}
		stats, err := src.QuizStats(ctx)
		return loadedMsg{quizzes: quizzes, stats: stats, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.err = msg.err
		s.quizzes, s.stats = msg.quizzes, msg.stats
		s.cursor, s.offset = 0, 0
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = min(s.cursor+1, max(len(s.quizzes)-1, 0))
		case "home", "g":
			s.cursor = 0
		case "end", "G":
			s.cursor = max(len(s.quizzes)-1, 0)
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return components.Message("Could not load history: "+s.err.Error(), true, width, height)
	case !s.loaded:
		return components.Message("Loading history...", false, width, height)
	case len(s.quizzes) == 0:
		return components.Message("No quizzes yet. Take one from the home screen!", false, width, height)
	}

	cw := components.ContentWidth(width)
	summary := theme.Subtitle.Render(fmt.Sprintf("%d quizzes   %.0f%% accuracy   best %d/%d",
		s.stats.Quizzes, s.stats.Accuracy()*100, s.stats.BestScore, s.stats.BestOf))

	// Summary, a blank line and the column header take three rows.
	rows := max(height-4, 1)
	s.scrollTo(rows)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).
		Render(fmt.Sprintf("  %-12s  %-9s  %-8s  %-5s  %s", "WHEN", "SCORE", "ANSWERED", "TIME", "")))
	end := min(s.offset+rows, len(s.quizzes))
	for i := s.offset; i < end; i++ {
		b.WriteByte('\n')
		b.WriteString(s.row(i))
	}

	table := lipgloss.NewStyle().Width(cw).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, summary, "", table))
}

// scrollTo keeps the cursor inside a window of n rows.
func (s *HistoryScreen) scrollTo(n int) {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+n {
		s.offset = s.cursor - n + 1
	}
}

func (s *HistoryScreen) row(i int) string {
	q := s.quizzes[i]
	outcome := ""
	if q.TimedOut {
		outcome = "timed out"
	}
	line := fmt.Sprintf("%-12s  %-9s  %-8d  %-5s  %s",
		q.Timestamp.Local().Format("Jan 02 15:04"),
		fmt.Sprintf("%d/%d", q.Score, q.QuestionCount),
		q.Answered,
		fmt.Sprintf("%d:%02d", q.ElapsedSecs/60, q.ElapsedSecs%60),
		outcome)
	if i == s.cursor {
		return theme.Selected.Render("▸ " + line)
	}
	return theme.Unselected.Render("  " + line)
}
