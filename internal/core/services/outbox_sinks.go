package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/cache"
)

// ActivitySink writes audit entries. Entries carry their own ID, so a
// redelivered event does not produce a second row.
type ActivitySink struct {
	Repo portsrepo.ActivityLogRepository
}

func (s ActivitySink) Deliver(ctx context.Context, event domain.OutboxEvent) error {
	var entry domain.ActivityLog
	if err := json.Unmarshal(event.Payload, &entry); err != nil {
		return fmt.Errorf("decode activity payload: %w", err)
	}
	return s.Repo.SaveActivity(ctx, entry)
}

// CacheSink drops the cached entry or entry family named by the event.
type CacheSink struct {
	Store cache.Store
}

func (s CacheSink) Deliver(_ context.Context, event domain.OutboxEvent) error {
	var inv domain.CacheInvalidation
	if err := json.Unmarshal(event.Payload, &inv); err != nil {
		return fmt.Errorf("decode cache payload: %w", err)
	}
	if inv.Key == "" && inv.Prefix == "" {
		return fmt.Errorf("cache invalidation without key or prefix")
	}
	if inv.Key != "" {
		s.Store.Remove(inv.Key)
	}
	if inv.Prefix != "" {
		s.Store.InvalidatePrefix(inv.Prefix)
	}
	return nil
}

// AnalyticsEnqueuer is the part of the analytics client the sink needs.
type AnalyticsEnqueuer interface {
	Enqueue(distinctID string, event string, properties map[string]any) error
}

// AnalyticsSink forwards captures to the analytics client.
type AnalyticsSink struct {
	Client AnalyticsEnqueuer
}

func (s AnalyticsSink) Deliver(_ context.Context, event domain.OutboxEvent) error {
	if s.Client == nil {
		return nil
	}
	var capture domain.AnalyticsCapture
	if err := json.Unmarshal(event.Payload, &capture); err != nil {
		return fmt.Errorf("decode analytics payload: %w", err)
	}
	if capture.Properties == nil {
		capture.Properties = map[string]any{}
	}
	capture.Properties["outbox_event_id"] = event.EventID
	return s.Client.Enqueue(capture.DistinctID, capture.Event, capture.Properties)
}
