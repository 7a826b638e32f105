package gorm

import "time"

// EventRecord is the journaled form of a ledger notification. One row
// per emitted event, append-only.
type EventRecord struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	EventID     string    `gorm:"column:event_id;uniqueIndex"`
	Type        string    `gorm:"column:type;index"`
	AirplaneID  uint64    `gorm:"column:airplane_id"`
	FlightID    uint64    `gorm:"column:flight_id;index"`
	Passenger   string    `gorm:"column:passenger"`
	Admin       string    `gorm:"column:admin"`
	Destination string    `gorm:"column:destination"`
	Status      string    `gorm:"column:status"`
	TotalSeats  int       `gorm:"column:total_seats"`
	Amount      uint64    `gorm:"column:amount"`
	OccurredAt  time.Time `gorm:"column:occurred_at;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (EventRecord) TableName() string {
	return "ledger_events"
}
