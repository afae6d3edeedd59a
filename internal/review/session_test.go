package review

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/ledger"
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

type brokenLedger struct {
	*ledger.Ledger
}

func (brokenLedger) Add(context.Context, string) error { return errors.New("storage offline") }

func TestNew_ExcludesMastered(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(ledger.NewMemoryKV())
	require.NoError(t, l.Add(ctx, "c1"))

	s, err := New(ctx, makePool(4), l)
	require.NoError(t, err)

	assert.Equal(t, []string{"c0", "c2", "c3"}, cards.IDs(s.Cards()))
	assert.Equal(t, 0, s.Position())
}

func TestNew_AllMasteredIsEmpty(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(ledger.NewMemoryKV())
	pool := makePool(2)
	for _, c := range pool {
		require.NoError(t, l.Add(ctx, c.ID))
	}

	s, err := New(ctx, pool, l)
	require.NoError(t, err)
	assert.True(t, s.Empty())

	_, ok := s.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Advance(), ErrEmptyWorkingSet)
	assert.ErrorIs(t, s.Retreat(), ErrEmptyWorkingSet)
	assert.ErrorIs(t, s.MarkMastered(ctx), ErrEmptyWorkingSet)
}

func TestNavigationCycle(t *testing.T) {
	ctx := context.Background()
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s, err := New(ctx, makePool(n), ledger.New(ledger.NewMemoryKV()))
			require.NoError(t, err)

			// Start off-origin so wraparound is exercised from both ends.
			require.NoError(t, s.Retreat())
			start := s.Position()
			assert.Equal(t, n-1, start)

			for i := 0; i < n; i++ {
				require.NoError(t, s.Advance())
			}
			assert.Equal(t, start, s.Position())

			for i := 0; i < n; i++ {
				require.NoError(t, s.Retreat())
			}
			assert.Equal(t, start, s.Position())
		})
	}
}

func TestAdvanceRetreat_Wrap(t *testing.T) {
	s, err := New(context.Background(), makePool(3), ledger.New(ledger.NewMemoryKV()))
	require.NoError(t, err)

	require.NoError(t, s.Retreat())
	c, _ := s.Current()
	assert.Equal(t, "c2", c.ID)

	require.NoError(t, s.Advance())
	c, _ = s.Current()
	assert.Equal(t, "c0", c.ID)
}

func TestMarkMastered(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(ledger.NewMemoryKV())
	s, err := New(ctx, makePool(4), l)
	require.NoError(t, err)

	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	require.NoError(t, s.MarkMastered(ctx))

	got, err := l.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, got["c2"])
	assert.Equal(t, []string{"c0", "c1", "c3"}, cards.IDs(s.Cards()))
	assert.Equal(t, 0, s.Position(), "position resets to the first card")
}

func TestMarkMastered_AlreadyInLedger(t *testing.T) {
	ctx := context.Background()
	kv := ledger.NewMemoryKV()
	l := ledger.New(kv)
	pool := makePool(2)

	first, err := New(ctx, pool, l)
	require.NoError(t, err)
	// A second session built before the first marks anything still sees c0.
	second, err := New(ctx, pool, l)
	require.NoError(t, err)

	require.NoError(t, first.MarkMastered(ctx))
	require.NoError(t, second.MarkMastered(ctx))

	raw, err := kv.Get(ctx, ledger.Namespace)
	require.NoError(t, err)
	assert.JSONEq(t, `["c0"]`, string(raw))
}

func TestMarkMastered_LedgerFailureLeavesSession(t *testing.T) {
	ctx := context.Background()
	l := brokenLedger{ledger.New(ledger.NewMemoryKV())}
	s, err := New(ctx, makePool(3), l)
	require.NoError(t, err)
	require.NoError(t, s.Advance())

	err = s.MarkMastered(ctx)
	require.Error(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 1, s.Position())
}

// Three cards, empty ledger, three marks in a row.
func TestMarkMastered_DrainsWorkingSet(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(ledger.NewMemoryKV())
	pool := makePool(3)
	s, err := New(ctx, pool, l)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.MarkMastered(ctx))
	}

	assert.True(t, s.Empty())
	got, err := l.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"c0": true, "c1": true, "c2": true}, got)
}

func TestResetProgress(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(ledger.NewMemoryKV())
	pool := makePool(2)
	s, err := New(ctx, pool, l)
	require.NoError(t, err)
	require.NoError(t, s.MarkMastered(ctx))
	require.NoError(t, s.MarkMastered(ctx))
	require.True(t, s.Empty())

	require.NoError(t, s.ResetProgress(ctx, pool))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 0, s.Position())

	got, err := l.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestShuffle_KeepsCards(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, makePool(8), ledger.New(ledger.NewMemoryKV()))
	require.NoError(t, err)
	require.NoError(t, s.Advance())

	s.Shuffle(random.New(7))

	assert.Equal(t, 0, s.Position())
	assert.ElementsMatch(t, cards.IDs(makePool(8)), cards.IDs(s.Cards()))
}

func TestShuffle_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, makePool(8), ledger.New(ledger.NewMemoryKV()))
	require.NoError(t, err)
	b, err := New(ctx, makePool(8), ledger.New(ledger.NewMemoryKV()))
	require.NoError(t, err)

	a.Shuffle(random.New(42))
	b.Shuffle(random.New(42))
	assert.Equal(t, cards.IDs(a.Cards()), cards.IDs(b.Cards()))
}
