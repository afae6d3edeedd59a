// Package quiz is the timed multiple-choice quiz screen.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/quiz"
	"github.com/abhisek/tango/internal/random"
	"github.com/abhisek/tango/internal/screen"
	"github.com/abhisek/tango/internal/store"
	"github.com/abhisek/tango/internal/ui/components"
	"github.com/abhisek/tango/internal/ui/layout"
)

// MaxMinutes bounds the duration picker.
const MaxMinutes = 60

// Defaults prefill the setup form.
type Defaults struct {
	Questions int
	Minutes   int
}

// Recorder stores finished quizzes.
type Recorder interface {
	AppendQuizEvent(ctx context.Context, data store.QuizEventData) error
}

const (
	fieldCount = iota
	fieldMinutes
)

// QuizScreen drives a quiz.Engine from key presses and timer ticks.
type QuizScreen struct {
	store    cards.Store
	recorder Recorder
	random   func() random.Source
	defaults Defaults

	engine *quiz.Engine
	pool   []cards.Card
	loaded bool

	loadErr    string
	setupErr   string
	setupField int
	count      int
	minutes    int

	choice    components.MultiChoice
	sessionID string
	recordErr string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen. recorder may be nil.
func New(store cards.Store, recorder Recorder, rnd func() random.Source, defaults Defaults) *QuizScreen {
	if rnd == nil {
		rnd = random.NewRandom
	}
	if defaults.Questions < 1 {
		defaults.Questions = 10
	}
	if defaults.Minutes < 1 {
		defaults.Minutes = 1
	}
	return &QuizScreen{
		store:    store,
		recorder: recorder,
		random:   rnd,
		defaults: defaults,
		engine:   quiz.New(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.loadPool()
}

func (s *QuizScreen) loadPool() tea.Cmd {
	s.loaded = false
	cs := s.store
	return func() tea.Msg {
		pool, err := cs.FetchAll(context.Background())
		return poolLoadedMsg{pool: pool, err: err}
	}
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.engine.State() {
	case quiz.Running:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Select"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case quiz.Finished:
		return []layout.KeyHint{
			{Key: "Enter", Description: "New quiz"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case poolLoadedMsg:
		return s.handlePoolLoaded(msg)

	case tickMsg:
		return s.handleTick(msg)

	case recordedMsg:
		if msg.err != nil {
			slog.Warn("failed to record quiz", "session", s.sessionID, "error", msg.err)
			s.recordErr = "Result could not be saved"
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handlePoolLoaded(msg poolLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loaded = true
	if msg.err != nil {
		slog.Error("failed to load quiz pool", "error", msg.err)
		s.loadErr = screen.LoadErrorText(msg.err)
		return s, nil
	}
	s.loadErr = ""
	s.pool = msg.pool

	// Keep the previous choice on restart, clamped to the new pool.
	if s.count == 0 {
		s.count = s.defaults.Questions
	}
	if s.minutes == 0 {
		s.minutes = s.defaults.Minutes
	}
	s.count = clamp(s.count, 1, max(1, len(s.pool)))
	s.minutes = clamp(s.minutes, 1, MaxMinutes)

	s.setupErr = ""
	if len(s.pool) < quiz.MinPool {
		s.setupErr = fmt.Sprintf("Add at least %d cards to take a quiz (you have %d).", quiz.MinPool, len(s.pool))
	}
	return s, nil
}

func (s *QuizScreen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if !s.engine.TickFor(msg.gen) {
		return s, nil
	}
	if s.engine.State() == quiz.Finished {
		return s, s.record()
	}
	return s, tickCmd(msg.gen)
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch s.engine.State() {
	case quiz.Setup:
		return s.handleSetupKey(key)
	case quiz.Running:
		return s.handleRunningKey(msg)
	case quiz.Finished:
		if key == "enter" || key == "r" {
			s.engine.Restart()
			s.recordErr = ""
			return s, s.loadPool()
		}
	}
	return s, nil
}

func (s *QuizScreen) handleSetupKey(key string) (screen.Screen, tea.Cmd) {
	if !s.loaded || s.loadErr != "" || len(s.pool) < quiz.MinPool {
		return s, nil
	}

	switch key {
	case "up", "k", "shift+tab":
		s.setupField = fieldCount
	case "down", "j", "tab":
		s.setupField = fieldMinutes
	case "left", "h", "-":
		s.adjust(-1)
	case "right", "l", "+", "=":
		s.adjust(1)
	case "enter":
		return s.start()
	}
	return s, nil
}

func (s *QuizScreen) adjust(delta int) {
	s.setupErr = ""
	if s.setupField == fieldCount {
		s.count = clamp(s.count+delta, 1, len(s.pool))
		return
	}
	s.minutes = clamp(s.minutes+delta, 1, MaxMinutes)
}

func (s *QuizScreen) start() (screen.Screen, tea.Cmd) {
	if err := s.engine.Configure(s.pool, s.count, s.minutes); err != nil {
		s.setupErr = setupErrorText(err)
		return s, nil
	}
	if err := s.engine.Start(s.random()); err != nil {
		s.setupErr = setupErrorText(err)
		return s, nil
	}
	s.setupErr = ""
	s.sessionID = uuid.NewString()
	s.resetChoice()
	slog.Debug("quiz started", "session", s.sessionID, "questions", s.count, "minutes", s.minutes)
	return s, tickCmd(s.engine.Generation())
}

func setupErrorText(err error) string {
	switch {
	case errors.Is(err, quiz.ErrInsufficientPool):
		return fmt.Sprintf("Add at least %d cards to take a quiz.", quiz.MinPool)
	case errors.Is(err, quiz.ErrInvalidQuestionCount):
		return "Pick between 1 and the number of cards you have."
	case errors.Is(err, quiz.ErrInsufficientDistractors):
		return "Too many cards share the same meaning to build four distinct choices."
	}
	return err.Error()
}

func (s *QuizScreen) resetChoice() {
	q, ok := s.engine.Current()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Prompt, q.Options[:])
}

func (s *QuizScreen) handleRunningKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.choice.HandleKey(msg.String()) {
		return s.answer(s.choice.Selected)
	}
	return s, nil
}

func (s *QuizScreen) answer(i int) (screen.Screen, tea.Cmd) {
	if err := s.engine.AnswerIndex(i); err != nil {
		return s, nil
	}
	if s.engine.State() == quiz.Finished {
		return s, s.record()
	}
	s.resetChoice()
	return s, nil
}

// record stores the finished quiz. The pending tick for the old run is
// already stale, so no timer needs cancelling here.
func (s *QuizScreen) record() tea.Cmd {
	if s.recorder == nil {
		return nil
	}
	data := store.QuizEventData{
		SessionID:     s.sessionID,
		QuestionCount: len(s.engine.Questions()),
		Answered:      s.engine.CurrentIndex(),
		Score:         s.engine.Score(),
		DurationSecs:  s.engine.DurationMinutes() * 60,
		ElapsedSecs:   s.engine.ElapsedSeconds(),
		TimedOut:      s.engine.Reason() == quiz.TimedOut,
	}
	rec := s.recorder
	return func() tea.Msg {
		return recordedMsg{err: rec.AppendQuizEvent(context.Background(), data)}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
