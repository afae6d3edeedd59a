package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Field length limits, in runes.
const (
	MaxTermLen    = 200
	MaxMeaningLen = 200
	MaxNoteLen    = 500
)

var (
	// ErrEmptyTerm is returned when a card has no term.
	ErrEmptyTerm = errors.New("term is required")

	// ErrEmptyMeaning is returned when a card has no meaning.
	ErrEmptyMeaning = errors.New("meaning is required")
)

// Card is a single vocabulary entry: a foreign-language term and its meaning.
// Cards are immutable once fetched into a session.
type Card struct {
	ID        string    `json:"id"`
	Term      string    `json:"term"`
	Meaning   string    `json:"meaning"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the card collection the study and quiz flows read from.
type Store interface {
	// FetchAll returns every card in insertion order. The result is a
	// point-in-time snapshot.
	FetchAll(ctx context.Context) ([]Card, error)

	// Create persists a new card and returns it with its assigned ID.
	Create(ctx context.Context, term, meaning, note string) (Card, error)
}

// Normalize trims surrounding whitespace from all fields.
func Normalize(term, meaning, note string) (string, string, string) {
	return strings.TrimSpace(term), strings.TrimSpace(meaning), strings.TrimSpace(note)
}

// Validate checks already-normalized card fields.
func Validate(term, meaning, note string) error {
	if term == "" {
		return ErrEmptyTerm
	}
	if meaning == "" {
		return ErrEmptyMeaning
	}
	if n := utf8.RuneCountInString(term); n > MaxTermLen {
		return fmt.Errorf("term is %d characters, max %d", n, MaxTermLen)
	}
	if n := utf8.RuneCountInString(meaning); n > MaxMeaningLen {
		return fmt.Errorf("meaning is %d characters, max %d", n, MaxMeaningLen)
	}
	if n := utf8.RuneCountInString(note); n > MaxNoteLen {
		return fmt.Errorf("note is %d characters, max %d", n, MaxNoteLen)
	}
	return nil
}

// NewestFirst returns a copy of pool in reverse insertion order.
func NewestFirst(pool []Card) []Card {
	out := make([]Card, len(pool))
	for i, c := range pool {
		out[len(pool)-1-i] = c
	}
	return out
}

// IDs returns the ids of the given cards, in order.
func IDs(pool []Card) []string {
	ids := make([]string, len(pool))
	for i, c := range pool {
		ids[i] = c.ID
	}
	return ids
}
