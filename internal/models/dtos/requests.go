package dtos

import "time"

type RegisterAirplaneRequest struct {
	Name            string `json:"name"`
	EconomySeats    int    `json:"economy_seats"`
	FirstClassSeats int    `json:"first_class_seats"`
}

type SetAirplaneStatusRequest struct {
	Status string `json:"status"`
}

type RegisterFlightRequest struct {
	AirplaneID    uint64    `json:"airplane_id"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	EconomyPrice  uint64    `json:"economy_price"`
	FirstPrice    uint64    `json:"first_price"`
}

// TicketRequest covers both purchase and cancellation: the seat class
// selects the pool, the index the exact seat.
type TicketRequest struct {
	SeatClass string `json:"seat_class"`
	SeatIndex int    `json:"seat_index"`
}

type InviteAdminRequest struct {
	Admin string `json:"admin"`
}
