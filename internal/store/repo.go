package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // LLM events only; empty matches all
	Status  string // assessment events only; empty matches all
}

// LLMRequestEventData captures a single LLM request for the event log.
type LLMRequestEventData struct {
	SessionID    string
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

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// Assessment statuses.
const (
	StatusReady  = "ready"
	StatusFailed = "failed"
)

// AssessmentEventData captures the outcome of a finished assessment.
// Maps are keyed by category label.
type AssessmentEventData struct {
	SessionID       string
	Generation      uint64
	Status          string
	Scores          map[string]int
	MaxScores       map[string]int
	Recommendations map[string]string
	ErrorMessage    string
}

// AssessmentEvent is a stored assessment outcome.
type AssessmentEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// EventRepo appends to and reads from the audit log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage per model ID.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// AppendAssessment records the outcome of a finished assessment.
	AppendAssessment(ctx context.Context, data AssessmentEventData) error

	// QueryAssessments returns assessment events, newest first.
	QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error)

	// GetAssessment returns one assessment event, or nil if it doesn't exist.
	GetAssessment(ctx context.Context, id int) (*AssessmentEvent, error)
}
