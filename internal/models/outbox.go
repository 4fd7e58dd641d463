package models

import (
	"database/sql"
	"time"
)

// OutboxEvent is the outbox_events row.
type OutboxEvent struct {
	EventID     string       `db:"event_id"`
	Topic       string       `db:"topic"`
	AggregateID string       `db:"aggregate_id"`
	Payload     []byte       `db:"payload"`
	CreatedAt   time.Time    `db:"created_at"`
	ProcessedAt sql.NullTime `db:"processed_at"`
	Attempts    int          `db:"attempts"`
	LastError   string       `db:"last_error"`
}
