package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter hands out the global monotonic sequence shared by every
// event table, so quiz and LLM events can be ordered against each other.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level. The row is seeded by migration.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo with raw SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// whereOpts renders the sequence and time filters of opts as a WHERE clause.
func whereOpts(opts QueryOpts) (string, []any) {
	var clause string
	var args []any
	add := func(cond string, v any) {
		if clause == "" {
			clause = " WHERE " + cond
		} else {
			clause += " AND " + cond
		}
		args = append(args, v)
	}
	if opts.After > 0 {
		add("sequence > ?", opts.After)
	}
	if opts.Before > 0 {
		add("sequence < ?", opts.Before)
	}
	if !opts.From.IsZero() {
		add("timestamp >= ?", opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		add("timestamp <= ?", opts.To.UnixMilli())
	}
	return clause, args
}

func limitClause(opts QueryOpts) string {
	if opts.Limit > 0 {
		return fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	return ""
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
