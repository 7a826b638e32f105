package ledger

import (
	"context"
	"time"
)

type EventType string

const (
	EventAirplaneRegistered    EventType = "airplane_registered"
	EventAirplaneStatusChanged EventType = "airplane_status_changed"
	EventFlightRegistered      EventType = "flight_registered"
	EventTicketPurchased       EventType = "ticket_purchased"
	EventTicketCanceled        EventType = "ticket_canceled"
	EventNewAdminInvited       EventType = "new_admin_invited"
	EventAdminInviteDeclined   EventType = "admin_invite_declined"
)

// Event is a notification for external observers. Only the fields
// relevant to the event type are populated.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	At          time.Time `json:"at"`
	AirplaneID  uint64    `json:"airplane_id,omitempty"`
	FlightID    uint64    `json:"flight_id,omitempty"`
	Passenger   string    `json:"passenger,omitempty"`
	Admin       string    `json:"admin,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Status      string    `json:"status,omitempty"`
	TotalSeats  int       `json:"total_seats,omitempty"`
	Amount      uint64    `json:"amount,omitempty"`
}

// Notifier receives events after the mutation they describe has
// committed. Implementations must not call back into the ledger.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Event) {}

// NopNotifier discards all events.
func NopNotifier() Notifier { return nopNotifier{} }
