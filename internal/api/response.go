package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"solo-skies/skyledger/internal/admingate"
	"solo-skies/skyledger/internal/ledger"
	"solo-skies/skyledger/internal/models/dtos/responses"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := responses.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := responses.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithLedgerError maps the ledger's sentinel errors onto HTTP
// statuses: bad input 400, missing records 404, capability failures
// 403, state conflicts 409, money shortfalls 402, external transfer
// failures 502.
func respondWithLedgerError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrInvalidInput),
		errors.Is(err, ledger.ErrInvalidSeatIndex):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrAirplaneNotFound),
		errors.Is(err, ledger.ErrFlightNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrNotOwner),
		errors.Is(err, admingate.ErrNotInvited),
		errors.Is(err, admingate.ErrNoInvite):
		status = http.StatusForbidden
	case errors.Is(err, ledger.ErrAirplaneOnHold),
		errors.Is(err, ledger.ErrFlightDeparted),
		errors.Is(err, ledger.ErrNoAvailableSeats),
		errors.Is(err, ledger.ErrSeatAlreadyReserved),
		errors.Is(err, ledger.ErrMaxTicketsReached),
		errors.Is(err, ledger.ErrNotPassengerOnFlight),
		errors.Is(err, ledger.ErrRefundWindowClosed):
		status = http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientAllowance),
		errors.Is(err, ledger.ErrInsufficientTreasury):
		status = http.StatusPaymentRequired
	case errors.Is(err, ledger.ErrTransferFailed):
		status = http.StatusBadGateway
	}
	respondWithError(w, status, err.Error())
}
