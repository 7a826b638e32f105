package entities

import "time"

// EventRow is the sqlx read-model for journaled ledger events.
type EventRow struct {
	ID          uint64    `db:"id" json:"id"`
	EventID     string    `db:"event_id" json:"event_id"`
	Type        string    `db:"type" json:"type"`
	AirplaneID  uint64    `db:"airplane_id" json:"airplane_id,omitempty"`
	FlightID    uint64    `db:"flight_id" json:"flight_id,omitempty"`
	Passenger   string    `db:"passenger" json:"passenger,omitempty"`
	Admin       string    `db:"admin" json:"admin,omitempty"`
	Destination string    `db:"destination" json:"destination,omitempty"`
	Status      string    `db:"status" json:"status,omitempty"`
	TotalSeats  int       `db:"total_seats" json:"total_seats,omitempty"`
	Amount      uint64    `db:"amount" json:"amount,omitempty"`
	OccurredAt  time.Time `db:"occurred_at" json:"occurred_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
