package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
)

// PostgresOutboxRepository persists domain events to the domain_events
// table. Append runs inside the same transaction as the aggregate write, so
// a committed state change and its events are inseparable; the crash window
// between commit and dispatch only ever leaves undispatched rows behind,
// never lost events.
type PostgresOutboxRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOutboxRepository creates a new PostgresOutboxRepository.
func NewPostgresOutboxRepository(pool *pgxpool.Pool) *PostgresOutboxRepository {
	return &PostgresOutboxRepository{pool: pool}
}

// Append stages event rows in the caller's transaction.
func (r *PostgresOutboxRepository) Append(ctx context.Context, db DBTX, events []domain.Event) error {
	for _, ev := range events {
		payload, err := json.Marshal(ev.Payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", ev.Name, err)
		}
		if _, err := db.Exec(ctx, `
			INSERT INTO domain_events (id, name, aggregate_id, occurred_at, payload)
			VALUES ($1, $2, $3, $4, $5)
		`, ev.ID, ev.Name, ev.AggregateID, ev.OccurredAt, payload); err != nil {
			return fmt.Errorf("append event %s: %w", ev.Name, err)
		}
	}
	return nil
}

// MarkDispatched flags events handled by the in-process dispatch that runs
// right after commit.
func (r *PostgresOutboxRepository) MarkDispatched(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE domain_events
		SET dispatched = true, dispatched_at = now()
		WHERE id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return fmt.Errorf("mark dispatched: %w", err)
	}
	return nil
}

// DrainUndispatched claims up to limit undispatched events with
// FOR UPDATE SKIP LOCKED, runs fn for each in occurrence order, and marks
// them dispatched in the same claiming transaction. If fn fails the claim
// rolls back and the rows stay for the next sweep. Returns how many events
// were delivered.
func (r *PostgresOutboxRepository) DrainUndispatched(ctx context.Context, limit int, fn func(domain.Event) error) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin drain: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT id, name, aggregate_id, occurred_at, payload
		FROM domain_events
		WHERE NOT dispatched
		ORDER BY occurred_at, id
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, limit)
	if err != nil {
		return 0, fmt.Errorf("claim events: %w", err)
	}

	var events []domain.Event
	for rows.Next() {
		var ev domain.Event
		var payload []byte
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.AggregateID, &ev.OccurredAt, &payload); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan event: %w", err)
		}
		decoded, err := domain.UnmarshalPayload(ev.Name, payload)
		if err != nil {
			rows.Close()
			return 0, err
		}
		ev.Payload = decoded
		events = append(events, ev)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("read events: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(events))
	for _, ev := range events {
		if err := fn(ev); err != nil {
			return 0, fmt.Errorf("relay %s: %w", ev.Name, err)
		}
		ids = append(ids, ev.ID)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE domain_events
		SET dispatched = true, dispatched_at = now()
		WHERE id = ANY($1::uuid[])
	`, ids); err != nil {
		return 0, fmt.Errorf("mark drained: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit drain: %w", err)
	}
	return len(events), nil
}

// UndispatchedCount reports the outbox backlog, exported as a gauge.
func (r *PostgresOutboxRepository) UndispatchedCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM domain_events WHERE NOT dispatched
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count undispatched: %w", err)
	}
	return count, nil
}
