package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO quiz_events
		(sequence, timestamp, session_id, question_count, answered, score, duration_secs, elapsed_secs, timed_out)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.SessionID, data.QuestionCount, data.Answered,
		data.Score, data.DurationSecs, data.ElapsedSecs, boolInt(data.TimedOut),
	)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentQuizEvents(ctx context.Context, limit int) ([]QuizEventRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, sequence, timestamp, session_id, question_count, answered, score, duration_secs, elapsed_secs, timed_out
		FROM quiz_events ORDER BY sequence DESC`+limitClause(QueryOpts{Limit: limit}))
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}
	defer rows.Close()

	var out []QuizEventRecord
	for rows.Next() {
		var rec QuizEventRecord
		var ts int64
		var timedOut int
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.QuestionCount,
			&rec.Answered, &rec.Score, &rec.DurationSecs, &rec.ElapsedSecs, &timedOut); err != nil {
			return nil, fmt.Errorf("scan quiz event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.TimedOut = timedOut != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) QuizStats(ctx context.Context) (QuizStats, error) {
	var st QuizStats
	var elapsed, last int64
	err := r.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(question_count), 0),
		COALESCE(SUM(answered), 0),
		COALESCE(SUM(score), 0),
		COALESCE(SUM(timed_out), 0),
		COALESCE(SUM(elapsed_secs), 0),
		COALESCE(MAX(timestamp), 0)
		FROM quiz_events`,
	).Scan(&st.Quizzes, &st.Questions, &st.Answered, &st.Correct, &st.TimedOut, &elapsed, &last)
	if err != nil {
		return QuizStats{}, fmt.Errorf("aggregate quiz events: %w", err)
	}
	if st.Quizzes == 0 {
		return st, nil
	}
	st.TotalElapsed = time.Duration(elapsed) * time.Second
	st.LastTakenAt = time.UnixMilli(last)

	err = r.db.QueryRowContext(ctx, `SELECT score, question_count FROM quiz_events
		ORDER BY CAST(score AS REAL) / question_count DESC, score DESC, sequence DESC LIMIT 1`,
	).Scan(&st.BestScore, &st.BestOf)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return QuizStats{}, fmt.Errorf("best quiz: %w", err)
	}
	return st, nil
}
