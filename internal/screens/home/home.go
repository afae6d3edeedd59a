package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/random"
	"github.com/abhisek/tango/internal/review"
	"github.com/abhisek/tango/internal/router"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/screens/addcard"
	"github.com/abhisek/tango/internal/screens/history"
	"github.com/abhisek/tango/internal/screens/library"
	quizscreen "github.com/abhisek/tango/internal/screens/quiz"
	"github.com/abhisek/tango/internal/screens/study"
	"github.com/abhisek/tango/internal/store"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
)

// Deps are the collaborators shared by every screen reachable from home.
type Deps struct {
	Cards  cards.Store
	Ledger review.Ledger

	// Events records quizzes. May be nil, which hides the history.
	Events store.EventRepo

	// Suggester fills in meanings on the add-card screen. Nil when no LLM
	// provider is configured.
	Suggester addcard.Suggester

	// Random returns a fresh source for each quiz or shuffle. Defaults to
	// random.NewRandom.
	Random func() random.Source

	Quiz quizscreen.Defaults
}

// Summary is the collection size and how many of those cards are learned.
type Summary struct {
	Cards   int
	Learned int
}

// LoadSummary counts the pool and the learned cards that are still in it.
func LoadSummary(ctx context.Context, store cards.Store, ledger review.Ledger) (Summary, error) {
	pool, err := store.FetchAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	learned, err := ledger.GetAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{Cards: len(pool)}
	for _, c := range pool {
		if learned[c.ID] {
			s.Learned++
		}
	}
	return s, nil
}

type stats struct {
	loaded    bool
	err       string
	cards     int
	learned   int
	quizzes   int
	bestScore int
	bestOf    int
}

type statsLoadedMsg struct {
	stats stats
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	stats      stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Random == nil {
		deps.Random = random.NewRandom
	}

	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd { return router.Push(s()) }
	}

	labels := []string{"ADD CARD", "LIBRARY", "STUDY", "QUIZ"}
	items := []components.MenuItem{
		{Label: labels[0], Action: push(func() screen.Screen {
			return addcard.New(deps.Cards, deps.Suggester)
		})},
		{Label: labels[1], Action: push(func() screen.Screen {
			return library.New(deps.Cards)
		})},
		{Label: labels[2], Action: push(func() screen.Screen {
			return study.New(deps.Cards, deps.Ledger, deps.Random)
		})},
		{Label: labels[3], Action: push(func() screen.Screen {
			var rec quizscreen.Recorder
			if deps.Events != nil {
				rec = deps.Events
			}
			return quizscreen.New(deps.Cards, rec, deps.Random, deps.Quiz)
		})},
	}
	if deps.Events != nil {
		labels = append(labels, "HISTORY")
		items = append(items, components.MenuItem{Label: "HISTORY", Action: push(func() screen.Screen {
			return history.New(deps.Events)
		})})
	}
	labels = append(labels, "EXIT")
	items = append(items, components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
		return tea.Quit
	}})

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: labels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the stats when returning from another screen.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		sum, err := LoadSummary(ctx, deps.Cards, deps.Ledger)
		if err != nil {
			return statsLoadedMsg{stats: stats{loaded: true, err: screen.LoadErrorText(err)}}
		}
		st := stats{loaded: true, cards: sum.Cards, learned: sum.Learned}
		if deps.Events != nil {
			if qs, err := deps.Events.QuizStats(ctx); err == nil {
				st.quizzes = qs.Quizzes
				st.bestScore = qs.BestScore
				st.bestOf = qs.BestOf
			}
		}
		return statsLoadedMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.stats = msg.stats
		return h, nil
	case screen.CollectionChangedMsg:
		return h, h.loadStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header and footer.
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.stats, cw, compact),
		renderMenu(h.menuLabels, h.menu.Selected, cw, compact),
	}
	if h.deps.Suggester == nil && !compact {
		sections = append(sections, renderLLMNote(cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
