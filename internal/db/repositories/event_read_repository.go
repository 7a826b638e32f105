package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"solo-skies/skyledger/internal/constants"
	"solo-skies/skyledger/internal/models/entities"
)

// EventReadRepository serves journal queries over the sqlx pool.
type EventReadRepository struct {
	db *sqlx.DB
}

func NewEventReadRepository(db *sqlx.DB) *EventReadRepository {
	return &EventReadRepository{db}
}

func (r *EventReadRepository) ListRecent(ctx context.Context, limit int) ([]entities.EventRow, error) {
	var rows []entities.EventRow
	if err := r.db.SelectContext(ctx, &rows, constants.ListRecentEvents, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *EventReadRepository) ListForFlight(ctx context.Context, flightID uint64, limit int) ([]entities.EventRow, error) {
	var rows []entities.EventRow
	if err := r.db.SelectContext(ctx, &rows, constants.ListFlightEvents, flightID, limit); err != nil {
		return nil, err
	}
	return rows, nil
}
