package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type SeatClass string

const (
	SeatEconomy SeatClass = "economy"
	SeatFirst   SeatClass = "first"
)

// PassengerAccount tracks one passenger's tickets on one flight. It
// is created lazily on first purchase and never deleted, so a
// zero-ticket account may remain after cancellations.
type PassengerAccount struct {
	Tickets int `json:"tickets"`
}

// Flight is a scheduled departure of one airplane. Seat maps are
// fixed-length slices sized from the airplane's capacity at
// registration time; an empty string marks a vacant seat. The flight
// mutex serializes all reservation mutations on this flight.
type Flight struct {
	mu sync.Mutex

	ID            uint64
	AirplaneID    uint64
	Destination   string
	DepartureTime time.Time
	EconomyPrice  uint64
	FirstPrice    uint64

	AvailableEconomy int
	AvailableFirst   int
	EconomySeatMap   []string
	FirstSeatMap     []string
	Passengers       map[string]*PassengerAccount
}

// pool resolves the price, availability counter and seat map for a
// seat class. Callers must hold f.mu.
func (f *Flight) pool(class SeatClass) (price uint64, available *int, seats []string, err error) {
	switch class {
	case SeatEconomy:
		return f.EconomyPrice, &f.AvailableEconomy, f.EconomySeatMap, nil
	case SeatFirst:
		return f.FirstPrice, &f.AvailableFirst, f.FirstSeatMap, nil
	default:
		return 0, nil, nil, fmt.Errorf("%w: unknown seat class %q", ErrInvalidInput, class)
	}
}

// FlightSnapshot is the read-model handed out by GetFlight. It copies
// the seat maps and passenger counts so readers never observe a
// concurrent mutation.
type FlightSnapshot struct {
	ID               uint64         `json:"id"`
	AirplaneID       uint64         `json:"airplane_id"`
	Destination      string         `json:"destination"`
	DepartureTime    time.Time      `json:"departure_time"`
	EconomyPrice     uint64         `json:"economy_price"`
	FirstPrice       uint64         `json:"first_price"`
	AvailableEconomy int            `json:"available_economy"`
	AvailableFirst   int            `json:"available_first"`
	EconomySeatMap   []string       `json:"economy_seat_map"`
	FirstSeatMap     []string       `json:"first_seat_map"`
	Passengers       map[string]int `json:"passengers"`
}

// RegisterFlight schedules a flight on an active airplane. Owner
// only. The airplane's seat capacity is copied into fresh, empty seat
// maps; later airplane changes never resize an existing flight.
func (l *Ledger) RegisterFlight(ctx context.Context, caller string, airplaneID uint64, destination string, departure time.Time, economyPrice, firstPrice uint64) (uint64, error) {
	if err := l.auth.RequireOwner(caller); err != nil {
		return 0, err
	}

	l.mu.RLock()
	rec, ok := l.airplanes[airplaneID]
	var airplane Airplane
	if ok {
		airplane = *rec
	}
	l.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: airplane %d", ErrAirplaneNotFound, airplaneID)
	}

	if destination == "" {
		return 0, fmt.Errorf("%w: destination must not be empty", ErrInvalidInput)
	}
	if !departure.After(l.now()) {
		return 0, fmt.Errorf("%w: departure time must be in the future", ErrInvalidInput)
	}
	if economyPrice < MinEconomyPrice {
		return 0, fmt.Errorf("%w: economy price below minimum %d", ErrInvalidInput, MinEconomyPrice)
	}
	if firstPrice < MinFirstPrice {
		return 0, fmt.Errorf("%w: first class price below minimum %d", ErrInvalidInput, MinFirstPrice)
	}
	if airplane.Status == AirplaneOnHold {
		return 0, fmt.Errorf("%w: airplane %d", ErrAirplaneOnHold, airplaneID)
	}

	id := l.flightIDs.Next()
	f := &Flight{
		ID:               id,
		AirplaneID:       airplaneID,
		Destination:      destination,
		DepartureTime:    departure,
		EconomyPrice:     economyPrice,
		FirstPrice:       firstPrice,
		AvailableEconomy: airplane.EconomySeats,
		AvailableFirst:   airplane.FirstClassSeats,
		EconomySeatMap:   make([]string, airplane.EconomySeats),
		FirstSeatMap:     make([]string, airplane.FirstClassSeats),
		Passengers:       make(map[string]*PassengerAccount),
	}
	l.mu.Lock()
	l.flights[id] = f
	l.mu.Unlock()

	l.emit(ctx, Event{
		Type:        EventFlightRegistered,
		FlightID:    id,
		AirplaneID:  airplaneID,
		Destination: destination,
	})
	return id, nil
}

// GetFlight returns a point-in-time snapshot of the flight.
func (l *Ledger) GetFlight(id uint64) (FlightSnapshot, error) {
	f := l.flight(id)
	if f == nil {
		return FlightSnapshot{}, fmt.Errorf("%w: flight %d", ErrFlightNotFound, id)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	snap := FlightSnapshot{
		ID:               f.ID,
		AirplaneID:       f.AirplaneID,
		Destination:      f.Destination,
		DepartureTime:    f.DepartureTime,
		EconomyPrice:     f.EconomyPrice,
		FirstPrice:       f.FirstPrice,
		AvailableEconomy: f.AvailableEconomy,
		AvailableFirst:   f.AvailableFirst,
		EconomySeatMap:   append([]string(nil), f.EconomySeatMap...),
		FirstSeatMap:     append([]string(nil), f.FirstSeatMap...),
		Passengers:       make(map[string]int, len(f.Passengers)),
	}
	for acct, pa := range f.Passengers {
		snap.Passengers[acct] = pa.Tickets
	}
	return snap, nil
}
