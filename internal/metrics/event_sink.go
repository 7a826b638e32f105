package metrics

import (
	"context"

	"solo-skies/skyledger/internal/ledger"
)

// EventSink feeds business metrics from ledger notifications. It is
// registered as an event-worker sink so revenue and refund counters
// stay on the single committed-event path.
type EventSink struct {
	reg *MetricsRegistry
}

func NewEventSink(reg *MetricsRegistry) *EventSink {
	return &EventSink{reg: reg}
}

func (s *EventSink) Record(_ context.Context, ev ledger.Event) error {
	switch ev.Type {
	case ledger.EventTicketPurchased:
		// Status carries the seat class for purchase events.
		s.reg.TicketsSoldTotal.WithLabelValues(ev.Status).Inc()
		s.reg.RevenueTotal.Add(float64(ev.Amount))
	case ledger.EventTicketCanceled:
		// Status carries the refund tier for cancellations.
		s.reg.TicketsCanceledTotal.WithLabelValues(ev.Status).Inc()
		s.reg.RefundsPaidTotal.Add(float64(ev.Amount))
	}
	return nil
}
