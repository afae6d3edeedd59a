package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/random"
)

func makePool(n int) []cards.Card {
	pool := make([]cards.Card, n)
	for i := range pool {
		pool[i] = cards.Card{
			ID:      fmt.Sprintf("c%d", i),
			Term:    fmt.Sprintf("term-%d", i),
			Meaning: fmt.Sprintf("meaning-%d", i),
		}
	}
	return pool
}

func startedEngine(t *testing.T, poolSize, count, minutes int, seed uint64) *Engine {
	t.Helper()
	e := New()
	require.NoError(t, e.Configure(makePool(poolSize), count, minutes))
	require.NoError(t, e.Start(random.New(seed)))
	require.Equal(t, Running, e.State())
	return e
}

func wrongOption(q Question) string {
	for _, o := range q.Options {
		if o != q.CorrectAnswer {
			return o
		}
	}
	return ""
}

func TestConfigure_Validation(t *testing.T) {
	tests := []struct {
		name    string
		pool    int
		count   int
		minutes int
		wantErr error
	}{
		{name: "pool of three", pool: 3, count: 1, minutes: 1, wantErr: ErrInsufficientPool},
		{name: "empty pool", pool: 0, count: 1, minutes: 1, wantErr: ErrInsufficientPool},
		{name: "zero questions", pool: 5, count: 0, minutes: 1, wantErr: ErrInvalidQuestionCount},
		{name: "negative questions", pool: 5, count: -2, minutes: 1, wantErr: ErrInvalidQuestionCount},
		{name: "more questions than cards", pool: 5, count: 6, minutes: 1, wantErr: ErrInvalidQuestionCount},
		{name: "zero minutes", pool: 5, count: 5, minutes: 0, wantErr: ErrInvalidDuration},
		{name: "minimum pool", pool: 4, count: 4, minutes: 1},
		{name: "one question", pool: 10, count: 1, minutes: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			err := e.Configure(makePool(tt.pool), tt.count, tt.minutes)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Setup, e.State())
				assert.Zero(t, e.QuestionCount(), "failed Configure must not record parameters")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.count, e.QuestionCount())
			assert.Equal(t, tt.minutes, e.DurationMinutes())
		})
	}
}

func TestConfigure_FailureKeepsPreviousConfig(t *testing.T) {
	e := New()
	require.NoError(t, e.Configure(makePool(5), 3, 2))
	require.ErrorIs(t, e.Configure(makePool(5), 9, 2), ErrInvalidQuestionCount)

	assert.Equal(t, 3, e.QuestionCount())
	require.NoError(t, e.Start(random.New(1)))
	assert.Len(t, e.Questions(), 3)
}

func TestStart_RequiresConfigure(t *testing.T) {
	e := New()
	assert.ErrorIs(t, e.Start(random.New(1)), ErrNotConfigured)
	assert.Equal(t, Setup, e.State())
}

// Pool of five, five questions, one minute.
func TestStart_FullPool(t *testing.T) {
	e := startedEngine(t, 5, 5, 1, 99)

	qs := e.Questions()
	require.Len(t, qs, 5)

	ids := map[string]bool{}
	for _, q := range qs {
		ids[q.CardID] = true
		assertOptionIntegrity(t, q)
	}
	assert.Len(t, ids, 5, "every card is asked exactly once")
	assert.Equal(t, 60, e.RemainingSeconds())
	assert.Equal(t, 0, e.CurrentIndex())
	assert.Equal(t, 0, e.Score())
}

func TestStart_Deterministic(t *testing.T) {
	a := startedEngine(t, 12, 8, 1, 2024)
	b := startedEngine(t, 12, 8, 1, 2024)
	assert.Equal(t, a.Questions(), b.Questions())
}

func TestStart_Twice(t *testing.T) {
	e := startedEngine(t, 5, 2, 1, 1)
	assert.ErrorIs(t, e.Start(random.New(2)), ErrNotSetup)
}

func TestAnswer_Correct(t *testing.T) {
	e := startedEngine(t, 6, 3, 1, 5)
	q, ok := e.Current()
	require.True(t, ok)

	require.NoError(t, e.Answer(q.CorrectAnswer))
	assert.Equal(t, 1, e.Score())
	assert.Equal(t, 1, e.CurrentIndex())
	assert.Equal(t, Running, e.State())
}

func TestAnswer_Wrong(t *testing.T) {
	e := startedEngine(t, 6, 3, 1, 5)
	q, _ := e.Current()

	require.NoError(t, e.Answer(wrongOption(q)))
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 1, e.CurrentIndex())
}

func TestAnswer_ExactMatchOnly(t *testing.T) {
	e := startedEngine(t, 6, 3, 1, 5)
	q, _ := e.Current()

	require.NoError(t, e.Answer(" "+q.CorrectAnswer))
	assert.Equal(t, 0, e.Score())
}

func TestAnswer_LastQuestionFinishes(t *testing.T) {
	e := startedEngine(t, 5, 3, 1, 11)
	gen := e.Generation()

	for i := 0; i < 3; i++ {
		q, ok := e.Current()
		require.True(t, ok)
		require.NoError(t, e.Answer(q.CorrectAnswer))
	}

	assert.Equal(t, Finished, e.State())
	assert.Equal(t, Completed, e.Reason())
	assert.Equal(t, 3, e.Score())
	assert.NotEqual(t, gen, e.Generation())
	assert.Greater(t, e.RemainingSeconds(), 0)

	assert.ErrorIs(t, e.Answer("x"), ErrNotRunning)
	assert.ErrorIs(t, e.Tick(), ErrNotRunning)
}

func TestAnswerIndex(t *testing.T) {
	e := startedEngine(t, 5, 2, 1, 3)
	q, _ := e.Current()

	idx := -1
	for i, o := range q.Options {
		if o == q.CorrectAnswer {
			idx = i
		}
	}
	require.NoError(t, e.AnswerIndex(idx))
	assert.Equal(t, 1, e.Score())

	assert.Error(t, e.AnswerIndex(OptionsPerQuestion))
	assert.Equal(t, 1, e.CurrentIndex())
}

// One second left; a single tick ends the quiz mid-way.
func TestTick_LastSecondTimesOut(t *testing.T) {
	e := startedEngine(t, 5, 5, 1, 8)
	q, _ := e.Current()
	require.NoError(t, e.Answer(q.CorrectAnswer))

	for e.RemainingSeconds() > 1 {
		require.NoError(t, e.Tick())
	}
	require.Equal(t, Running, e.State())

	require.NoError(t, e.Tick())
	assert.Equal(t, 0, e.RemainingSeconds())
	assert.Equal(t, Finished, e.State())
	assert.Equal(t, TimedOut, e.Reason())
	assert.Equal(t, 1, e.CurrentIndex())
	assert.Equal(t, 60, e.ElapsedSeconds())
}

func TestTickFor_IgnoresStaleGeneration(t *testing.T) {
	e := startedEngine(t, 5, 2, 1, 4)
	gen := e.Generation()

	assert.True(t, e.TickFor(gen))
	assert.Equal(t, 59, e.RemainingSeconds())

	assert.False(t, e.TickFor(gen-1))
	assert.Equal(t, 59, e.RemainingSeconds())

	e.Restart()
	require.NoError(t, e.Configure(makePool(5), 2, 1))
	require.NoError(t, e.Start(random.New(4)))

	assert.False(t, e.TickFor(gen), "tick armed for the replaced quiz")
	assert.Equal(t, 60, e.RemainingSeconds())
	assert.True(t, e.TickFor(e.Generation()))
}

func TestTickFor_AfterFinish(t *testing.T) {
	e := startedEngine(t, 4, 1, 1, 4)
	gen := e.Generation()
	q, _ := e.Current()
	require.NoError(t, e.Answer(q.CorrectAnswer))

	assert.False(t, e.TickFor(gen))
	assert.False(t, e.TickFor(e.Generation()))
	assert.Equal(t, Finished, e.State())
}

func TestRestart(t *testing.T) {
	e := startedEngine(t, 5, 2, 2, 6)
	q, _ := e.Current()
	require.NoError(t, e.Answer(q.CorrectAnswer))

	e.Restart()
	assert.Equal(t, Setup, e.State())
	assert.Empty(t, e.Questions())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.CurrentIndex())
	assert.ErrorIs(t, e.Start(random.New(1)), ErrNotConfigured)

	require.NoError(t, e.Configure(makePool(8), 4, 1))
	require.NoError(t, e.Start(random.New(1)))
	assert.Len(t, e.Questions(), 4)
}

// Random play through many seeds, pool sizes and answer patterns.
func TestQuizInvariants(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		src := random.New(seed)
		poolSize := MinPool + src.IntN(10)
		count := 1 + src.IntN(poolSize)

		e := New()
		require.NoError(t, e.Configure(makePool(poolSize), count, 1))
		require.NoError(t, e.Start(src))

		for e.State() == Running {
			assert.LessOrEqual(t, e.Score(), e.CurrentIndex())
			assert.GreaterOrEqual(t, e.RemainingSeconds(), 0)

			switch src.IntN(3) {
			case 0:
				require.NoError(t, e.Tick())
			case 1:
				q, _ := e.Current()
				require.NoError(t, e.Answer(q.CorrectAnswer))
			default:
				q, _ := e.Current()
				require.NoError(t, e.Answer(wrongOption(q)))
			}
		}

		done := e.CurrentIndex() == count || e.RemainingSeconds() == 0
		assert.True(t, done, "seed %d finished without completing or timing out", seed)
		assert.LessOrEqual(t, e.Score(), e.CurrentIndex())
		for _, q := range e.Questions() {
			assertOptionIntegrity(t, q)
		}
	}
}
