package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rokasce/medium-clone-sub000/internal/domain"
	"github.com/rokasce/medium-clone-sub000/internal/logger"
	"github.com/rokasce/medium-clone-sub000/internal/metrics"
	"github.com/rokasce/medium-clone-sub000/internal/repository"
)

// DefaultRelayTimeout bounds one relay sweep.
const DefaultRelayTimeout = 30 * time.Second

// Relay sweeps the outbox for events that were committed but never
// dispatched (a crash between commit and dispatch) and redelivers them
// through the dispatcher. Handlers dedupe by event id, so a row that was
// half-handled before a crash is safe to deliver again.
type Relay struct {
	outbox     repository.OutboxRepository
	dispatcher *Dispatcher
	interval   time.Duration
	batchSize  int

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewRelay creates a relay that drains up to batchSize events per sweep.
func NewRelay(outbox repository.OutboxRepository, dispatcher *Dispatcher, interval time.Duration, batchSize int) *Relay {
	return &Relay{
		outbox:     outbox,
		dispatcher: dispatcher,
		interval:   interval,
		batchSize:  batchSize,
		stopChan:   make(chan struct{}),
	}
}

// Start begins sweeping on the configured interval. The first sweep runs
// immediately to pick up anything a previous process left behind.
func (r *Relay) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.sweep()

		for {
			select {
			case <-ticker.C:
				r.sweep()
			case <-r.stopChan:
				return
			}
		}
	}()
}

// Stop halts the relay and waits for an in-flight sweep to finish.
func (r *Relay) Stop() {
	close(r.stopChan)
	r.wg.Wait()
}

func (r *Relay) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultRelayTimeout)
	defer cancel()

	delivered, err := r.outbox.DrainUndispatched(ctx, r.batchSize, func(ev domain.Event) error {
		return r.dispatcher.Deliver(ctx, ev)
	})
	if err != nil {
		logger.Error("Outbox sweep failed",
			slog.String("error", err.Error()))
	} else if delivered > 0 {
		logger.Info("Redelivered outbox events",
			slog.Int("count", delivered))
	}

	if backlog, err := r.outbox.UndispatchedCount(ctx); err == nil {
		metrics.OutboxBacklog.Set(float64(backlog))
	}
}
