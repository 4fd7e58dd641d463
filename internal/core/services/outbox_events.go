package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
)

// outboxBatch collects the side effects of a write as outbox events that
// commit together with it. The first encoding error sticks.
type outboxBatch struct {
	newID  func() string
	now    time.Time
	actor  domain.Actor
	events []domain.OutboxEvent
	err    error
}

func newOutboxBatch(base BaseService, actor domain.Actor, now time.Time) *outboxBatch {
	return &outboxBatch{newID: base.NewID, now: now, actor: actor}
}

func (b *outboxBatch) add(topic domain.OutboxTopic, aggregateID string, payload any) {
	if b.err != nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		b.err = fmt.Errorf("encode %s payload: %w", topic, err)
		return
	}
	b.events = append(b.events, domain.OutboxEvent{
		EventID:     b.newID(),
		Topic:       topic,
		AggregateID: aggregateID,
		Payload:     raw,
		CreatedAt:   b.now,
	})
}

func (b *outboxBatch) activity(aggregateID, verb string, severity domain.ActivitySeverity, description string) {
	b.add(domain.TopicActivity, aggregateID, domain.ActivityLog{
		LogID:       b.newID(),
		ActorID:     b.actor.UserID,
		Verb:        verb,
		Severity:    severity,
		Description: description,
		CreatedAt:   b.now,
	})
}

func (b *outboxBatch) invalidateKey(aggregateID, key string) {
	b.add(domain.TopicCacheInvalidate, aggregateID, domain.CacheInvalidation{Key: key})
}

func (b *outboxBatch) invalidatePrefix(aggregateID, prefix string) {
	b.add(domain.TopicCacheInvalidate, aggregateID, domain.CacheInvalidation{Prefix: prefix})
}

func (b *outboxBatch) analytics(aggregateID, event string, props map[string]any) {
	b.add(domain.TopicAnalytics, aggregateID, domain.AnalyticsCapture{
		DistinctID: b.actor.UserID,
		Event:      event,
		Properties: props,
	})
}

func (b *outboxBatch) enqueue(ctx context.Context, tx portsrepo.OutboxWriter) error {
	if b.err != nil {
		return b.err
	}
	if len(b.events) == 0 {
		return nil
	}
	return tx.EnqueueOutbox(ctx, b.events...)
}
