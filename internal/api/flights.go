package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	ctxutil "solo-skies/skyledger/internal/auth"
	"solo-skies/skyledger/internal/common"
	"solo-skies/skyledger/internal/ledger"
	"solo-skies/skyledger/internal/models/dtos"
	"solo-skies/skyledger/internal/models/dtos/responses"
)

// RegisterFlightHandler handles POST /api/v1/flights. Owner only.
func RegisterFlightHandler(led *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.RegisterFlightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		claims := ctxutil.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "missing claims")
			return
		}

		id, err := led.RegisterFlight(r.Context(), claims.Account(), req.AirplaneID, req.Destination, req.DepartureTime, req.EconomyPrice, req.FirstPrice)
		if err != nil {
			respondWithLedgerError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, &responses.RegisteredResponse{ID: id})
	}
}

// GetFlightHandler handles GET /api/v1/flights/{id}, serving cached
// snapshots when fresh.
func GetFlightHandler(led *ledger.Ledger, cache *common.FlightCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid flight id")
			return
		}

		if snap, ok := cache.Get(id); ok {
			respondWithSuccess(w, http.StatusOK, &snap)
			return
		}

		snap, err := led.GetFlight(id)
		if err != nil {
			respondWithLedgerError(w, err)
			return
		}
		cache.Set(snap)
		respondWithSuccess(w, http.StatusOK, &snap)
	}
}
