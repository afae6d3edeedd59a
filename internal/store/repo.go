package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose restricts LLM event queries to one purpose label.
	Purpose string
}

// QuizEventData captures one finished quiz.
type QuizEventData struct {
	SessionID     string
	QuestionCount int
	Answered      int
	Score         int
	DurationSecs  int
	ElapsedSecs   int
	TimedOut      bool
}

// QuizEventRecord is a stored quiz event.
type QuizEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizEventData
}

// QuizStats aggregates every recorded quiz.
type QuizStats struct {
	Quizzes      int
	Questions    int
	Answered     int
	Correct      int
	TimedOut     int
	BestScore    int
	BestOf       int
	TotalElapsed time.Duration
	LastTakenAt  time.Time
}

// Accuracy is correct answers over answered questions, 0 when nothing was
// answered.
func (s QuizStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls per purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM calls per model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendQuizEvent records a finished quiz.
	AppendQuizEvent(ctx context.Context, data QuizEventData) error

	// RecentQuizEvents returns the most recent quizzes, newest first.
	RecentQuizEvents(ctx context.Context, limit int) ([]QuizEventRecord, error)

	// QuizStats aggregates all quiz events.
	QuizStats(ctx context.Context) (QuizStats, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
