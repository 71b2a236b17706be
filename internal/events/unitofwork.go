package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/logger"
	"github.com/rokasce/medium-clone-sub000/internal/repository"
)

// TxStarter begins transactions. Satisfied by *pgxpool.Pool.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UnitOfWork is the commit boundary. A command stages all of its aggregate
// mutations inside one transaction via Commit's fn; only when the physical
// commit succeeds are the aggregates' queued events dispatched. A failed
// commit dispatches nothing and the queues are discarded with the request.
type UnitOfWork struct {
	db         TxStarter
	outbox     repository.OutboxRepository
	dispatcher *Dispatcher
}

// NewUnitOfWork creates a unit of work over db.
func NewUnitOfWork(db TxStarter, outbox repository.OutboxRepository, dispatcher *Dispatcher) *UnitOfWork {
	return &UnitOfWork{db: db, outbox: outbox, dispatcher: dispatcher}
}

// Commit runs fn inside a transaction, appends the pending events of the
// given aggregates to the outbox in that same transaction, commits, then
// dispatches.
//
// Cancellation is honored only up to the commit: once committed the events
// describe already-true facts, so dispatch runs on a non-cancelable context
// and either completes or fails loudly. On a dispatch failure the error is
// returned to the caller, but the committed state stands and the relay
// redelivers the affected events later.
func (u *UnitOfWork) Commit(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error, aggregates ...domain.Aggregate) error {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	// Enumerate the touched aggregates that actually queued events. This
	// enumeration order is the dispatch order.
	var tracked []domain.Aggregate
	var pending []domain.Event
	for _, agg := range aggregates {
		evs := agg.PendingEvents()
		if len(evs) == 0 {
			continue
		}
		tracked = append(tracked, agg)
		pending = append(pending, evs...)
	}

	if len(pending) > 0 {
		if err := u.outbox.Append(ctx, tx, pending); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if len(tracked) == 0 {
		return nil
	}

	dctx := context.WithoutCancel(ctx)
	if err := u.dispatcher.Dispatch(dctx, tracked); err != nil {
		// Committed facts, failed side effects: the relay will redeliver
		// the undispatched rows with handler-side dedupe.
		return fmt.Errorf("dispatch after commit: %w", err)
	}

	ids := make([]string, len(pending))
	for i, ev := range pending {
		ids[i] = ev.ID
	}
	if err := u.outbox.MarkDispatched(dctx, ids); err != nil {
		// Events were handled; the relay may redeliver them, which the
		// handlers dedupe by event id. Log and move on.
		logger.ErrorContext(dctx, "Failed to mark events dispatched",
			slog.Int("count", len(ids)),
			slog.String("error", err.Error()))
	}
	return nil
}
