package ledger

import "errors"

// Sentinel errors for every way a ledger operation can fail. Handlers
// match on these with errors.Is to pick an HTTP status.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrAirplaneNotFound      = errors.New("airplane not found")
	ErrFlightNotFound        = errors.New("flight not found")
	ErrAirplaneOnHold        = errors.New("airplane is on hold")
	ErrFlightDeparted        = errors.New("flight already departed")
	ErrNoAvailableSeats      = errors.New("no available seats in class")
	ErrInvalidSeatIndex      = errors.New("invalid seat index")
	ErrSeatAlreadyReserved   = errors.New("seat already reserved")
	ErrMaxTicketsReached     = errors.New("ticket limit reached for this flight")
	ErrNotPassengerOnFlight  = errors.New("caller holds no ticket on this flight")
	ErrRefundWindowClosed    = errors.New("refund window closed")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInsufficientTreasury  = errors.New("treasury balance too low for refund")
	ErrTransferFailed        = errors.New("balance transfer failed")
	ErrNotOwner              = errors.New("caller is not the current owner")
)
