package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // filter by purpose when non-empty
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
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

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// GenerationEventData captures the outcome of one content generation
// request as seen at the HTTP boundary.
type GenerationEventData struct {
	Endpoint     string
	Topic        string
	Difficulty   string
	Success      bool
	DefaultsUsed bool
	DurationMs   int64
	ErrorMessage string
}

// GenerationEvent is a stored generation event.
type GenerationEvent struct {
	ID        int
	Timestamp time.Time
	GenerationEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendGeneration records the outcome of a generation request.
	AppendGeneration(ctx context.Context, data GenerationEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// QueryGenerations returns generation events, newest first.
	QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
