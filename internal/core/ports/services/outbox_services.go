package services

import "context"

// OutboxDispatcherSvc delivers committed outbox events to their sinks.
type OutboxDispatcherSvc interface {
	// Drain delivers at most batchSize pending events and reports how many succeeded.
	Drain(ctx context.Context, batchSize int) (int, error)
}
