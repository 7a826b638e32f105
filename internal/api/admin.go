package api

import (
	"encoding/json"
	"net/http"

	"solo-skies/skyledger/internal/admingate"
	ctxutil "solo-skies/skyledger/internal/auth"
	"solo-skies/skyledger/internal/models/dtos"
	"solo-skies/skyledger/internal/models/dtos/responses"
)

// GetAdminStateHandler handles GET /api/v1/admin.
func GetAdminStateHandler(gate *admingate.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithSuccess(w, http.StatusOK, &responses.AdminStateResponse{
			Owner:        gate.CurrentOwner(),
			InvitedAdmin: gate.InvitedAdmin(),
		})
	}
}

// InviteAdminHandler handles POST /api/v1/admin/invite. Owner only.
func InviteAdminHandler(gate *admingate.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.InviteAdminRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		claims := ctxutil.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "missing claims")
			return
		}

		if err := gate.Invite(r.Context(), claims.Account(), req.Admin); err != nil {
			respondWithLedgerError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &responses.AdminStateResponse{
			Owner:        gate.CurrentOwner(),
			InvitedAdmin: gate.InvitedAdmin(),
		})
	}
}

// AcceptInvitationHandler handles POST /api/v1/admin/accept. Only the
// invited admin may call it; on success ownership transfers.
func AcceptInvitationHandler(gate *admingate.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ctxutil.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "missing claims")
			return
		}

		if err := gate.AcceptInvitation(r.Context(), claims.Account()); err != nil {
			respondWithLedgerError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &responses.AdminStateResponse{
			Owner: gate.CurrentOwner(),
		})
	}
}

// DeclineInvitationHandler handles POST /api/v1/admin/decline. Owner
// only; clears the pending invitation.
func DeclineInvitationHandler(gate *admingate.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ctxutil.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "missing claims")
			return
		}

		if err := gate.DeclineInvitation(r.Context(), claims.Account()); err != nil {
			respondWithLedgerError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &responses.AdminStateResponse{
			Owner: gate.CurrentOwner(),
		})
	}
}
