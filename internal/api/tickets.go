package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	ctxutil "solo-skies/skyledger/internal/auth"
	"solo-skies/skyledger/internal/common"
	"solo-skies/skyledger/internal/ledger"
	"solo-skies/skyledger/internal/metrics"
	"solo-skies/skyledger/internal/models/dtos"
	"solo-skies/skyledger/internal/models/dtos/responses"
)

func parseSeatClass(s string) (ledger.SeatClass, error) {
	switch ledger.SeatClass(s) {
	case ledger.SeatEconomy:
		return ledger.SeatEconomy, nil
	case ledger.SeatFirst:
		return ledger.SeatFirst, nil
	default:
		return "", fmt.Errorf("unknown seat class %q", s)
	}
}

func bindTicketRequest(w http.ResponseWriter, r *http.Request) (flightID uint64, class ledger.SeatClass, seatIndex int, caller string, ok bool) {
	flightID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid flight id")
		return 0, "", 0, "", false
	}

	var req dtos.TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid JSON")
		return 0, "", 0, "", false
	}

	class, err = parseSeatClass(req.SeatClass)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return 0, "", 0, "", false
	}

	claims := ctxutil.GetUserClaims(r.Context())
	if claims == nil {
		respondWithError(w, http.StatusUnauthorized, "missing claims")
		return 0, "", 0, "", false
	}

	return flightID, class, req.SeatIndex, claims.Account(), true
}

// PurchaseTicketHandler handles POST /api/v1/flights/{id}/tickets.
// The caller's JWT subject is the paying account and the passenger
// written into the seat map.
func PurchaseTicketHandler(led *ledger.Ledger, cache *common.FlightCache, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flightID, class, seatIndex, caller, ok := bindTicketRequest(w, r)
		if !ok {
			return
		}

		if err := led.PurchaseTicket(r.Context(), flightID, class, seatIndex, caller); err != nil {
			respondWithLedgerError(w, err)
			return
		}

		cache.Invalidate(flightID)
		recordSeatMetrics(led, metricsReg, flightID)

		respondWithSuccess(w, http.StatusCreated, &responses.TicketResponse{
			FlightID:  flightID,
			SeatClass: string(class),
			SeatIndex: seatIndex,
			Passenger: caller,
		})
	}
}

// CancelTicketHandler handles POST /api/v1/flights/{id}/cancellations.
func CancelTicketHandler(led *ledger.Ledger, cache *common.FlightCache, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flightID, class, seatIndex, caller, ok := bindTicketRequest(w, r)
		if !ok {
			return
		}

		if err := led.CancelTicket(r.Context(), flightID, class, seatIndex, caller); err != nil {
			respondWithLedgerError(w, err)
			return
		}

		cache.Invalidate(flightID)
		recordSeatMetrics(led, metricsReg, flightID)

		respondWithSuccess(w, http.StatusOK, &responses.TicketResponse{
			FlightID:  flightID,
			SeatClass: string(class),
			SeatIndex: seatIndex,
			Passenger: caller,
		})
	}
}

func recordSeatMetrics(led *ledger.Ledger, metricsReg *metrics.MetricsRegistry, flightID uint64) {
	snap, err := led.GetFlight(flightID)
	if err != nil {
		return
	}
	label := strconv.FormatUint(flightID, 10)
	metricsReg.SeatsAvailable.WithLabelValues(label, string(ledger.SeatEconomy)).Set(float64(snap.AvailableEconomy))
	metricsReg.SeatsAvailable.WithLabelValues(label, string(ledger.SeatFirst)).Set(float64(snap.AvailableFirst))
}
