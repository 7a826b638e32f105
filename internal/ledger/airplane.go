package ledger

import (
	"context"
	"fmt"
)

type AirplaneStatus string

const (
	AirplaneActive AirplaneStatus = "active"
	AirplaneOnHold AirplaneStatus = "on_hold"
)

// Airplane is an aircraft owned by the operator. Seat counts are
// fixed at registration; flights snapshot them at flight creation.
type Airplane struct {
	ID              uint64         `json:"id"`
	Name            string         `json:"name"`
	EconomySeats    int            `json:"economy_seats"`
	FirstClassSeats int            `json:"first_class_seats"`
	Status          AirplaneStatus `json:"status"`
}

// RegisterAirplane stores a new airplane and returns its id. Owner
// only.
func (l *Ledger) RegisterAirplane(ctx context.Context, caller, name string, economySeats, firstClassSeats int) (uint64, error) {
	if err := l.auth.RequireOwner(caller); err != nil {
		return 0, err
	}
	if name == "" {
		return 0, fmt.Errorf("%w: airplane name must not be empty", ErrInvalidInput)
	}
	if economySeats < MinEconomySeats {
		return 0, fmt.Errorf("%w: need at least %d economy seats", ErrInvalidInput, MinEconomySeats)
	}
	if firstClassSeats < MinFirstClassSeats {
		return 0, fmt.Errorf("%w: need at least %d first class seats", ErrInvalidInput, MinFirstClassSeats)
	}

	id := l.airplaneIDs.Next()
	l.mu.Lock()
	l.airplanes[id] = &Airplane{
		ID:              id,
		Name:            name,
		EconomySeats:    economySeats,
		FirstClassSeats: firstClassSeats,
		Status:          AirplaneActive,
	}
	l.mu.Unlock()

	l.emit(ctx, Event{
		Type:       EventAirplaneRegistered,
		AirplaneID: id,
		TotalSeats: economySeats + firstClassSeats,
	})
	return id, nil
}

// SetAirplaneStatus toggles an airplane between active and on-hold.
// Owner only. Flights already registered against the airplane are
// unaffected.
func (l *Ledger) SetAirplaneStatus(ctx context.Context, caller string, id uint64, status AirplaneStatus) error {
	if err := l.auth.RequireOwner(caller); err != nil {
		return err
	}
	if status != AirplaneActive && status != AirplaneOnHold {
		return fmt.Errorf("%w: unknown airplane status %q", ErrInvalidInput, status)
	}

	l.mu.Lock()
	a, ok := l.airplanes[id]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: airplane %d", ErrAirplaneNotFound, id)
	}
	a.Status = status
	l.mu.Unlock()

	l.emit(ctx, Event{
		Type:       EventAirplaneStatusChanged,
		AirplaneID: id,
		Status:     string(status),
	})
	return nil
}

// GetAirplane returns a copy of the airplane record.
func (l *Ledger) GetAirplane(id uint64) (Airplane, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.airplanes[id]
	if !ok {
		return Airplane{}, fmt.Errorf("%w: airplane %d", ErrAirplaneNotFound, id)
	}
	return *a, nil
}
