// Package quiz implements the timed multiple-choice quiz: configuration,
// question generation, scoring and the countdown.
//
// The engine is driven entirely by its caller. Tick is not self-scheduled;
// the UI delivers one tick per second tagged with the Generation it was
// armed for, and TickFor drops ticks from a replaced or finished quiz.
package quiz

import (
	"errors"
	"fmt"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/random"
)

// MinPool is the smallest pool that can produce a question with three
// distractors.
const MinPool = 4

// OptionsPerQuestion is the number of choices shown for each question.
const OptionsPerQuestion = 4

var (
	ErrInsufficientPool        = fmt.Errorf("quiz: need at least %d cards", MinPool)
	ErrInvalidQuestionCount    = errors.New("quiz: question count out of range")
	ErrInvalidDuration         = errors.New("quiz: duration must be at least one minute")
	ErrInsufficientDistractors = errors.New("quiz: not enough distinct answers for distractors")
	ErrNotConfigured           = errors.New("quiz: not configured")
	ErrNotSetup                = errors.New("quiz: not in setup")
	ErrNotRunning              = errors.New("quiz: not running")
)

// State is the engine lifecycle.
type State int

const (
	Setup State = iota
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case Setup:
		return "setup"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FinishReason says why a quiz ended.
type FinishReason int

const (
	NotFinished FinishReason = iota
	Completed
	TimedOut
)

// Question is one generated multiple-choice item.
type Question struct {
	CardID string

	Prompt string

	// PromptIsSourceLanguage is true when the prompt is the term and the
	// expected answer is the meaning.
	PromptIsSourceLanguage bool

	CorrectAnswer string
	Options       [OptionsPerQuestion]string
}

// Engine is the quiz state machine. The zero value is not usable; call New.
type Engine struct {
	state      State
	generation uint64

	pool     []cards.Card
	count    int
	minutes  int
	hasSetup bool

	questions []Question
	index     int
	score     int
	remaining int
	reason    FinishReason
}

// New returns an engine in Setup.
func New() *Engine {
	return &Engine{state: Setup}
}

// Configure validates and records the quiz parameters. The pool is copied.
// On error nothing changes.
func (e *Engine) Configure(pool []cards.Card, questionCount, durationMinutes int) error {
	if e.state != Setup {
		return ErrNotSetup
	}
	if len(pool) < MinPool {
		return ErrInsufficientPool
	}
	if questionCount < 1 || questionCount > len(pool) {
		return ErrInvalidQuestionCount
	}
	if durationMinutes < 1 {
		return ErrInvalidDuration
	}
	e.pool = append([]cards.Card(nil), pool...)
	e.count = questionCount
	e.minutes = durationMinutes
	e.hasSetup = true
	return nil
}

// Start generates the questions and begins the countdown.
func (e *Engine) Start(src random.Source) error {
	if e.state != Setup {
		return ErrNotSetup
	}
	if !e.hasSetup {
		return ErrNotConfigured
	}

	questions, err := Generate(src, e.pool, e.count)
	if err != nil {
		return err
	}

	e.questions = questions
	e.index = 0
	e.score = 0
	e.remaining = e.minutes * 60
	e.reason = NotFinished
	e.state = Running
	e.generation++
	return nil
}

// Tick consumes one second. At zero the quiz finishes.
func (e *Engine) Tick() error {
	if e.state != Running {
		return ErrNotRunning
	}
	e.remaining--
	if e.remaining <= 0 {
		e.remaining = 0
		e.finish(TimedOut)
	}
	return nil
}

// TickFor applies a tick armed for generation gen. Stale ticks are ignored
// and report false.
func (e *Engine) TickFor(gen uint64) bool {
	if gen != e.generation || e.state != Running {
		return false
	}
	_ = e.Tick()
	return true
}

// Answer scores option against the current question and moves on.
func (e *Engine) Answer(option string) error {
	if e.state != Running {
		return ErrNotRunning
	}
	if option == e.questions[e.index].CorrectAnswer {
		e.score++
	}
	e.index++
	if e.index == len(e.questions) {
		e.finish(Completed)
	}
	return nil
}

// AnswerIndex answers with the option at i of the current question.
func (e *Engine) AnswerIndex(i int) error {
	if e.state != Running {
		return ErrNotRunning
	}
	if i < 0 || i >= OptionsPerQuestion {
		return fmt.Errorf("quiz: option %d out of range", i)
	}
	return e.Answer(e.questions[e.index].Options[i])
}

// Restart discards the quiz and returns to Setup. The last configuration is
// kept so the setup form can be prefilled, but must be confirmed again with
// Configure before Start.
func (e *Engine) Restart() {
	e.state = Setup
	e.generation++
	e.questions = nil
	e.index = 0
	e.score = 0
	e.remaining = 0
	e.reason = NotFinished
	e.hasSetup = false
}

func (e *Engine) finish(r FinishReason) {
	e.state = Finished
	e.reason = r
	e.generation++
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Generation identifies the current run. It changes on Start, Restart and
// when the quiz finishes.
func (e *Engine) Generation() uint64 { return e.generation }

// Questions returns the generated questions.
func (e *Engine) Questions() []Question {
	return append([]Question(nil), e.questions...)
}

// Current returns the live question. ok is false outside Running.
func (e *Engine) Current() (q Question, ok bool) {
	if e.state != Running {
		return Question{}, false
	}
	return e.questions[e.index], true
}

func (e *Engine) CurrentIndex() int     { return e.index }
func (e *Engine) Score() int            { return e.score }
func (e *Engine) RemainingSeconds() int { return e.remaining }
func (e *Engine) Reason() FinishReason  { return e.reason }

// QuestionCount returns the configured number of questions.
func (e *Engine) QuestionCount() int { return e.count }

// DurationMinutes returns the configured duration.
func (e *Engine) DurationMinutes() int { return e.minutes }

// ElapsedSeconds is how much of the allotted time was used.
func (e *Engine) ElapsedSeconds() int { return e.minutes*60 - e.remaining }
