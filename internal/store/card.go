package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/tango/internal/cards"
	"github.com/abhisek/tango/internal/ledger"
)

// CardRepo is the local card collection. Cards come back in insertion order.
type CardRepo struct {
	db *sql.DB
}

var _ cards.Store = (*CardRepo)(nil)

func (r *CardRepo) FetchAll(ctx context.Context) ([]cards.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, term, meaning, note, created_at FROM cards ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	out := []cards.Card{}
	for rows.Next() {
		var c cards.Card
		var created int64
		if err := rows.Scan(&c.ID, &c.Term, &c.Meaning, &c.Note, &created); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		c.CreatedAt = time.UnixMilli(created)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CardRepo) Create(ctx context.Context, term, meaning, note string) (cards.Card, error) {
	term, meaning, note = cards.Normalize(term, meaning, note)
	if err := cards.Validate(term, meaning, note); err != nil {
		return cards.Card{}, err
	}

	c := cards.Card{
		ID:        uuid.NewString(),
		Term:      term,
		Meaning:   meaning,
		Note:      note,
		CreatedAt: time.Now().Truncate(time.Millisecond),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (id, term, meaning, note, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Term, c.Meaning, c.Note, c.CreatedAt.UnixMilli())
	if err != nil {
		return cards.Card{}, fmt.Errorf("insert card: %w", err)
	}
	return c, nil
}

// Count returns the number of stored cards.
func (r *CardRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

// KV is a string-keyed blob table.
type KV struct {
	db *sql.DB
}

var _ ledger.KV = (*KV)(nil)

func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := k.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	_, err := k.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	if _, err := k.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
