package api

import (
	"net/http"

	ctxutil "solo-skies/skyledger/internal/auth"
	"solo-skies/skyledger/internal/ledger"
	"solo-skies/skyledger/internal/models/dtos/responses"
)

// GetBalanceHandler handles GET /api/v1/balance: the caller's token
// balance and the allowance currently granted to the treasury.
func GetBalanceHandler(svc ledger.BalanceService, treasury string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ctxutil.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "missing claims")
			return
		}

		bal, err := svc.BalanceOf(r.Context(), claims.Account())
		if err != nil {
			respondWithError(w, http.StatusBadGateway, "balance lookup failed")
			return
		}
		allowance, err := svc.AllowanceOf(r.Context(), claims.Account(), treasury)
		if err != nil {
			respondWithError(w, http.StatusBadGateway, "allowance lookup failed")
			return
		}

		respondWithSuccess(w, http.StatusOK, &responses.BalanceResponse{
			Account:   claims.Account(),
			Balance:   bal,
			Allowance: allowance,
		})
	}
}
