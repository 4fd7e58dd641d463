package domain

import (
	"encoding/json"
	"time"
)

// OutboxTopic routes an outbox event to its sink.
type OutboxTopic string

const (
	TopicActivity        OutboxTopic = "activity.recorded"
	TopicCacheInvalidate OutboxTopic = "cache.invalidate"
	TopicAnalytics       OutboxTopic = "analytics.captured"
)

// OutboxEvent is written in the same transaction as the change it describes
// and delivered at least once after commit.
type OutboxEvent struct {
	EventID     string          `json:"event_id"`
	Topic       OutboxTopic     `json:"topic"`
	AggregateID string          `json:"aggregate_id"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	Attempts    int             `json:"attempts"`
	LastError   string          `json:"last_error,omitempty"`
}

// ActivitySeverity mirrors audit log levels.
type ActivitySeverity string

const (
	SeverityInfo     ActivitySeverity = "info"
	SeverityWarning  ActivitySeverity = "warning"
	SeverityCritical ActivitySeverity = "critical"
)

// ActivityLog is one audit entry.
type ActivityLog struct {
	LogID       string           `json:"log_id"`
	ActorID     string           `json:"actor_id"`
	Verb        string           `json:"verb"`
	Severity    ActivitySeverity `json:"severity"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
}

// CacheInvalidation is the payload of TopicCacheInvalidate. Key names a
// single entry, Prefix a family of entries.
type CacheInvalidation struct {
	Key    string `json:"key,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

// AnalyticsCapture is the payload of TopicAnalytics.
type AnalyticsCapture struct {
	DistinctID string         `json:"distinct_id"`
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
}
