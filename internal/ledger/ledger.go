// Package ledger persists the set of card ids a learner has marked as
// mastered.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Namespace is the fixed key the ledger is stored under.
const Namespace = "learned_cards"

// ErrNotFound is returned by a KV when the key has never been set.
var ErrNotFound = errors.New("key not found")

// KV is a durable string key-value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Ledger is the mastery set. Reads return a fresh set on every call.
type Ledger struct {
	kv  KV
	key string
}

// New returns a ledger stored in kv under Namespace.
func New(kv KV) *Ledger {
	return &Ledger{kv: kv, key: Namespace}
}

// GetAll returns the mastered ids. A missing key is an empty set.
func (l *Ledger) GetAll(ctx context.Context) (map[string]bool, error) {
	ids, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Add marks id as mastered. Adding an id that is already present leaves the
// stored list untouched.
func (l *Ledger) Add(ctx context.Context, id string) error {
	ids, err := l.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	ids = append(ids, id)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := l.kv.Set(ctx, l.key, data); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

// Clear removes every mastered id.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.kv.Delete(ctx, l.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clear ledger: %w", err)
	}
	return nil
}

func (l *Ledger) load(ctx context.Context) ([]string, error) {
	data, err := l.kv.Get(ctx, l.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	return ids, nil
}

// MemoryKV is an in-process KV, safe for concurrent use.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
