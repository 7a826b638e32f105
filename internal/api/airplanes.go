package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	ctxutil "solo-skies/skyledger/internal/auth"
	"solo-skies/skyledger/internal/ledger"
	"solo-skies/skyledger/internal/models/dtos"
	"solo-skies/skyledger/internal/models/dtos/responses"
)

// RegisterAirplaneHandler handles POST /api/v1/airplanes. Owner only:
// the ledger consults the admin gate with the caller's account.
func RegisterAirplaneHandler(led *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.RegisterAirplaneRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		claims := ctxutil.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "missing claims")
			return
		}

		id, err := led.RegisterAirplane(r.Context(), claims.Account(), req.Name, req.EconomySeats, req.FirstClassSeats)
		if err != nil {
			respondWithLedgerError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, &responses.RegisteredResponse{ID: id})
	}
}

// SetAirplaneStatusHandler handles PATCH /api/v1/airplanes/{id}/status.
func SetAirplaneStatusHandler(led *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid airplane id")
			return
		}

		var req dtos.SetAirplaneStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		claims := ctxutil.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "missing claims")
			return
		}

		if err := led.SetAirplaneStatus(r.Context(), claims.Account(), id, ledger.AirplaneStatus(req.Status)); err != nil {
			respondWithLedgerError(w, err)
			return
		}

		airplane, err := led.GetAirplane(id)
		if err != nil {
			respondWithLedgerError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &airplane)
	}
}

// GetAirplaneHandler handles GET /api/v1/airplanes/{id}.
func GetAirplaneHandler(led *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid airplane id")
			return
		}

		airplane, err := led.GetAirplane(id)
		if err != nil {
			respondWithLedgerError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &airplane)
	}
}
