package api

import (
	"net/http"
	"strconv"

	"solo-skies/skyledger/internal/constants"
	"solo-skies/skyledger/internal/db/repositories"
	"solo-skies/skyledger/internal/models/entities"
)

// ListEventsHandler handles GET /api/v1/events?limit=N. Served from
// the sqlx read repository; unavailable when the journal runs on the
// embedded sqlite database.
func ListEventsHandler(reads *repositories.EventReadRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reads == nil {
			respondWithError(w, http.StatusServiceUnavailable, "event reads require the Postgres journal")
			return
		}

		limit := constants.DefaultEventLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 500 {
				respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 500")
				return
			}
			limit = n
		}

		rows, err := reads.ListRecent(r.Context(), limit)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to read events")
			return
		}
		if rows == nil {
			rows = []entities.EventRow{}
		}
		respondWithSuccess(w, http.StatusOK, &rows)
	}
}
