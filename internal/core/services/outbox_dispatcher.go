package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
)

const (
	defaultMaxAttempts = 10
	defaultLease       = time.Minute
)

// OutboxSink delivers one event. Delivery is at least once, so sinks must
// tolerate seeing the same event again.
type OutboxSink interface {
	Deliver(ctx context.Context, event domain.OutboxEvent) error
}

type outboxDispatcher struct {
	BaseService
	store       portsrepo.OutboxStore
	sinks       map[domain.OutboxTopic]OutboxSink
	maxAttempts int
	lease       time.Duration
	logger      *slog.Logger
}

// NewOutboxDispatcher creates a dispatcher routing each topic to its sink.
func NewOutboxDispatcher(store portsrepo.OutboxStore, sinks map[domain.OutboxTopic]OutboxSink, logger *slog.Logger, opts ...ServiceOption) portssvc.OutboxDispatcherSvc {
	return &outboxDispatcher{
		BaseService: newBaseService(opts...),
		store:       store,
		sinks:       sinks,
		maxAttempts: defaultMaxAttempts,
		lease:       defaultLease,
		logger:      logger.With(slog.String("component", "outbox")),
	}
}

var _ portssvc.OutboxDispatcherSvc = (*outboxDispatcher)(nil)

func (d *outboxDispatcher) Drain(ctx context.Context, batchSize int) (int, error) {
	events, err := d.store.ClaimPending(ctx, batchSize, d.maxAttempts, d.lease, d.Now())
	if err != nil {
		return 0, fmt.Errorf("claim outbox events: %w", err)
	}

	delivered := 0
	for _, ev := range events {
		if ctx.Err() != nil {
			// unclaimed leases expire and the events are retried
			return delivered, ctx.Err()
		}
		logger := d.logger.With(slog.String("event_id", ev.EventID), slog.String("topic", string(ev.Topic)))

		sink, ok := d.sinks[ev.Topic]
		if !ok {
			d.fail(ctx, logger, ev, fmt.Errorf("no sink for topic %s", ev.Topic))
			continue
		}
		if err := sink.Deliver(ctx, ev); err != nil {
			d.fail(ctx, logger, ev, err)
			continue
		}
		if err := d.store.MarkProcessed(ctx, ev.EventID, d.Now()); err != nil {
			logger.Error("Failed to mark outbox event processed", slog.String("error", err.Error()))
			continue
		}
		delivered++
	}

	if len(events) > 0 {
		d.logger.Info("Outbox drained", slog.Int("claimed", len(events)), slog.Int("delivered", delivered))
	}
	return delivered, nil
}

func (d *outboxDispatcher) fail(ctx context.Context, logger *slog.Logger, ev domain.OutboxEvent, cause error) {
	logger.Warn("Outbox delivery failed", slog.Int("attempt", ev.Attempts+1), slog.String("error", cause.Error()))
	if err := d.store.MarkFailed(ctx, ev.EventID, cause.Error()); err != nil {
		logger.Error("Failed to record outbox failure", slog.String("error", err.Error()))
	}
}
