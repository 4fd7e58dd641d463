package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/antusaha970/member-management-backend-sub000/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOutboxRepository struct {
	BaseRepository
}

func newPgxOutboxRepository(pool *pgxpool.Pool) *PgxOutboxRepository {
	return &PgxOutboxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.OutboxStore           = (*PgxOutboxRepository)(nil)
	_ portsrepo.ActivityLogRepository = (*PgxOutboxRepository)(nil)
)

// ClaimPending leases the oldest deliverable events. SKIP LOCKED lets several
// drainers run side by side without claiming the same row.
func (r *PgxOutboxRepository) ClaimPending(ctx context.Context, limit int, maxAttempts int, lease time.Duration, now time.Time) ([]domain.OutboxEvent, error) {
	query := `
		UPDATE outbox_events
		SET locked_until = $1
		WHERE event_id IN (
			SELECT event_id
			FROM outbox_events
			WHERE processed_at IS NULL
			  AND attempts < $2
			  AND (locked_until IS NULL OR locked_until < $3)
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING event_id, topic, aggregate_id, payload, created_at, processed_at, attempts, last_error;
	`
	rows, err := r.Pool.Query(ctx, query, now.Add(lease), maxAttempts, now, limit)
	if err != nil {
		return nil, storageErr(err, "claim outbox events")
	}
	modelEvents, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OutboxEvent, error) {
		var m models.OutboxEvent
		err := row.Scan(&m.EventID, &m.Topic, &m.AggregateID, &m.Payload, &m.CreatedAt, &m.ProcessedAt, &m.Attempts, &m.LastError)
		return m, err
	})
	if err != nil {
		return nil, storageErr(err, "scan outbox events")
	}

	events := make([]domain.OutboxEvent, len(modelEvents))
	for i, m := range modelEvents {
		events[i] = domain.OutboxEvent{
			EventID:     m.EventID,
			Topic:       domain.OutboxTopic(m.Topic),
			AggregateID: m.AggregateID,
			Payload:     json.RawMessage(m.Payload),
			CreatedAt:   m.CreatedAt,
			Attempts:    m.Attempts,
			LastError:   m.LastError,
		}
		if m.ProcessedAt.Valid {
			processedAt := m.ProcessedAt.Time
			events[i].ProcessedAt = &processedAt
		}
	}
	// RETURNING order is unspecified
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

func (r *PgxOutboxRepository) MarkProcessed(ctx context.Context, eventID string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE outbox_events SET processed_at = $1, locked_until = NULL
		WHERE event_id = $2;`, now, eventID)
	if err != nil {
		return storageErr(err, "mark outbox event "+eventID+" processed")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: outbox event %s", apperrors.ErrNotFound, eventID)
	}
	return nil
}

func (r *PgxOutboxRepository) MarkFailed(ctx context.Context, eventID string, reason string) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE outbox_events SET attempts = attempts + 1, last_error = $1, locked_until = NULL
		WHERE event_id = $2;`, reason, eventID)
	return storageErr(err, "mark outbox event "+eventID+" failed")
}

// SaveActivity is idempotent on log_id so redelivered events are harmless.
func (r *PgxOutboxRepository) SaveActivity(ctx context.Context, entry domain.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (log_id, actor_id, verb, severity, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (log_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.LogID,
		entry.ActorID,
		entry.Verb,
		string(entry.Severity),
		entry.Description,
		entry.CreatedAt,
	)
	return storageErr(err, "save activity "+entry.Verb)
}
