package repositories

import (
	"context"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
)

// OutboxStore is the drain side of the transactional outbox.
type OutboxStore interface {
	// ClaimPending leases up to limit unprocessed events for lease. Events
	// leased by another drainer are skipped.
	ClaimPending(ctx context.Context, limit int, maxAttempts int, lease time.Duration, now time.Time) ([]domain.OutboxEvent, error)

	// MarkProcessed records successful delivery.
	MarkProcessed(ctx context.Context, eventID string, now time.Time) error

	// MarkFailed records a failed delivery attempt and releases the lease.
	MarkFailed(ctx context.Context, eventID string, reason string) error
}

// ActivityLogRepository persists audit entries.
type ActivityLogRepository interface {
	SaveActivity(ctx context.Context, entry domain.ActivityLog) error
}
