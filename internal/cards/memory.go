package cards

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. IDs are sequential ("m1", "m2", ...).
type MemoryStore struct {
	mu    sync.Mutex
	cards []Card
	next  int

	// Err, when set, is returned by every call.
	Err error
}

// NewMemoryStore returns a store preloaded with cards.
func NewMemoryStore(cards ...Card) *MemoryStore {
	return &MemoryStore{cards: append([]Card(nil), cards...)}
}

func (m *MemoryStore) FetchAll(context.Context) ([]Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]Card{}, m.cards...), nil
}

func (m *MemoryStore) Create(_ context.Context, term, meaning, note string) (Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return Card{}, m.Err
	}
	term, meaning, note = Normalize(term, meaning, note)
	if err := Validate(term, meaning, note); err != nil {
		return Card{}, err
	}
	m.next++
	c := Card{
		ID:        fmt.Sprintf("m%d", m.next),
		Term:      term,
		Meaning:   meaning,
		Note:      note,
		CreatedAt: time.Now(),
	}
	m.cards = append(m.cards, c)
	return c, nil
}
