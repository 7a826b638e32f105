package routes

import (
	"github.com/go-chi/chi/v5"

	"solo-skies/skyledger/internal/api"
	"solo-skies/skyledger/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers. Every
// route is authenticated; ownership checks happen inside the ledger
// and admin gate against the caller's account.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, jwtSecret []byte) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(deps.Metrics))
		v1.Use(middleware.AuthMiddleware(jwtSecret))

		// Registries (owner-gated inside the ledger)
		v1.Post("/airplanes", api.RegisterAirplaneHandler(deps.Ledger))
		v1.Patch("/airplanes/{id}/status", api.SetAirplaneStatusHandler(deps.Ledger))
		v1.Get("/airplanes/{id}", api.GetAirplaneHandler(deps.Ledger))

		v1.Post("/flights", api.RegisterFlightHandler(deps.Ledger))
		v1.Get("/flights/{id}", api.GetFlightHandler(deps.Ledger, deps.FlightCache))

		// Reservations
		v1.Post("/flights/{id}/tickets", api.PurchaseTicketHandler(deps.Ledger, deps.FlightCache, deps.Metrics))
		v1.Post("/flights/{id}/cancellations", api.CancelTicketHandler(deps.Ledger, deps.FlightCache, deps.Metrics))

		// Admin gate
		v1.Get("/admin", api.GetAdminStateHandler(deps.Gate))
		v1.Post("/admin/invite", api.InviteAdminHandler(deps.Gate))
		v1.Post("/admin/accept", api.AcceptInvitationHandler(deps.Gate))
		v1.Post("/admin/decline", api.DeclineInvitationHandler(deps.Gate))

		// Observability
		v1.Get("/events", api.ListEventsHandler(deps.EventReads))
		v1.Get("/balance", api.GetBalanceHandler(deps.Balance, deps.Ledger.TreasuryAccount()))
	})
}
