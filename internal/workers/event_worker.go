package workers

import (
	"context"

	"solo-skies/skyledger/internal/ledger"
	"solo-skies/skyledger/internal/logging"
)

// Sink receives journaled ledger events. Implementations must be safe
// for use from a single worker goroutine.
type Sink interface {
	Record(ctx context.Context, ev ledger.Event) error
}

// EventWorker is the ledger's Notifier. Notify never blocks the
// reservation path: events land on a buffered channel and a single
// Run goroutine fans them out to the configured sinks (journal DB,
// Redis stream). A full buffer drops the event with a warning rather
// than stalling a purchase.
type EventWorker struct {
	ch    chan ledger.Event
	sinks []Sink
}

var _ ledger.Notifier = (*EventWorker)(nil)

func NewEventWorker(buffer int, sinks ...Sink) *EventWorker {
	if buffer <= 0 {
		buffer = 256
	}
	return &EventWorker{
		ch:    make(chan ledger.Event, buffer),
		sinks: sinks,
	}
}

func (w *EventWorker) Notify(_ context.Context, ev ledger.Event) {
	select {
	case w.ch <- ev:
	default:
		logging.Warn("event buffer full, dropping notification",
			"event_id", ev.ID,
			"type", string(ev.Type),
		)
	}
}

// Run drains the event channel until ctx is canceled. Sink failures
// are logged and skipped; the journal is best-effort relative to the
// reservation state machine, which has already committed.
func (w *EventWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.flush()
			return ctx.Err()
		case ev := <-w.ch:
			w.dispatch(ctx, ev)
		}
	}
}

func (w *EventWorker) dispatch(ctx context.Context, ev ledger.Event) {
	for _, s := range w.sinks {
		if err := s.Record(ctx, ev); err != nil {
			logging.Error("event sink failed",
				"event_id", ev.ID,
				"type", string(ev.Type),
				"error", err.Error(),
			)
		}
	}
}

// flush drains whatever is still buffered at shutdown.
func (w *EventWorker) flush() {
	for {
		select {
		case ev := <-w.ch:
			w.dispatch(context.Background(), ev)
		default:
			return
		}
	}
}
