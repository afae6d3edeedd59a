// Package review drives flip-card study over the cards a learner has not yet
// mastered.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/random"
)

// ErrEmptyWorkingSet is returned by navigation and mastery calls when every
// card has been mastered. Callers should check Empty first.
var ErrEmptyWorkingSet = errors.New("review: working set is empty")

// Ledger is the mastery set a session reads at start and appends to.
type Ledger interface {
	GetAll(ctx context.Context) (map[string]bool, error)
	Add(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Session is a cyclic walk over the unmastered cards of a pool.
type Session struct {
	ledger     Ledger
	workingSet []cards.Card
	position   int
}

// New builds a session from pool, excluding every card already in the
// ledger. Pool order is kept. An empty working set is not an error.
func New(ctx context.Context, pool []cards.Card, ledger Ledger) (*Session, error) {
	s := &Session{ledger: ledger}
	if err := s.rebuild(ctx, pool); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) rebuild(ctx context.Context, pool []cards.Card) error {
	mastered, err := s.ledger.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load mastered cards: %w", err)
	}
	ws := make([]cards.Card, 0, len(pool))
	for _, c := range pool {
		if !mastered[c.ID] {
			ws = append(ws, c)
		}
	}
	s.workingSet = ws
	s.position = 0
	return nil
}

// Len returns the number of cards left to review.
func (s *Session) Len() int { return len(s.workingSet) }

// Empty reports whether every card has been mastered.
func (s *Session) Empty() bool { return len(s.workingSet) == 0 }

// Position returns the index of the current card.
func (s *Session) Position() int { return s.position }

// Current returns the card under review. ok is false when the session is
// empty.
func (s *Session) Current() (card cards.Card, ok bool) {
	if s.Empty() {
		return cards.Card{}, false
	}
	return s.workingSet[s.position], true
}

// Cards returns a copy of the working set.
func (s *Session) Cards() []cards.Card {
	return append([]cards.Card(nil), s.workingSet...)
}

// Advance moves to the next card, wrapping at the end.
func (s *Session) Advance() error {
	n := len(s.workingSet)
	if n == 0 {
		return ErrEmptyWorkingSet
	}
	s.position = (s.position + 1) % n
	return nil
}

// Retreat moves to the previous card, wrapping at the start.
func (s *Session) Retreat() error {
	n := len(s.workingSet)
	if n == 0 {
		return ErrEmptyWorkingSet
	}
	s.position = (s.position - 1 + n) % n
	return nil
}

// MarkMastered records the current card in the ledger, drops it from the
// working set and returns to the first card. If the ledger write fails the
// session is unchanged.
func (s *Session) MarkMastered(ctx context.Context) error {
	if s.Empty() {
		return ErrEmptyWorkingSet
	}
	card := s.workingSet[s.position]
	if err := s.ledger.Add(ctx, card.ID); err != nil {
		return fmt.Errorf("mark %s mastered: %w", card.ID, err)
	}

	ws := make([]cards.Card, 0, len(s.workingSet)-1)
	ws = append(ws, s.workingSet[:s.position]...)
	ws = append(ws, s.workingSet[s.position+1:]...)
	s.workingSet = ws
	s.position = 0
	return nil
}

// ResetProgress clears the ledger and rebuilds the working set from pool.
func (s *Session) ResetProgress(ctx context.Context, pool []cards.Card) error {
	if err := s.ledger.Clear(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return s.rebuild(ctx, pool)
}

// Shuffle reorders the working set and returns to the first card.
func (s *Session) Shuffle(src random.Source) {
	if len(s.workingSet) < 2 {
		s.position = 0
		return
	}
	perm := random.Permute(src, len(s.workingSet))
	ws := make([]cards.Card, len(perm))
	for i, j := range perm {
		ws[i] = s.workingSet[j]
	}
	s.workingSet = ws
	s.position = 0
}
