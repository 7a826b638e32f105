package repositories

import (
	"context"

	"gorm.io/gorm"

	"solo-skies/skyledger/internal/ledger"
	gormModels "solo-skies/skyledger/internal/models/gorm"
)

// EventJournalRepository appends ledger notifications to the journal
// table. It is a sink for the event worker.
type EventJournalRepository struct {
	db *gorm.DB
}

func NewEventJournalRepository(db *gorm.DB) *EventJournalRepository {
	return &EventJournalRepository{db: db}
}

func (r *EventJournalRepository) Record(ctx context.Context, ev ledger.Event) error {
	rec := gormModels.EventRecord{
		EventID:     ev.ID,
		Type:        string(ev.Type),
		AirplaneID:  ev.AirplaneID,
		FlightID:    ev.FlightID,
		Passenger:   ev.Passenger,
		Admin:       ev.Admin,
		Destination: ev.Destination,
		Status:      ev.Status,
		TotalSeats:  ev.TotalSeats,
		Amount:      ev.Amount,
		OccurredAt:  ev.At,
	}
	return r.db.WithContext(ctx).Create(&rec).Error
}

// CountByType reports how many events of one type have been
// journaled. Used by tests and the health surface.
func (r *EventJournalRepository) CountByType(ctx context.Context, eventType string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.EventRecord{}).
		Where("type = ?", eventType).
		Count(&n).Error
	return n, err
}
