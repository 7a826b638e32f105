package api

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"

	"solo-skies/skyledger/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck. Pings the journal
// database alongside basic uptime reporting.
func HealthCheckHandler(journalDB *gorm.DB, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		dbStatus := "ok"
		dbDetails := "journal connected"
		if journalDB == nil {
			dbStatus = "down"
			dbDetails = "journal database not configured"
		} else if sqlDB, err := journalDB.DB(); err != nil {
			dbStatus = "down"
			dbDetails = err.Error()
		} else if err := sqlDB.Ping(); err != nil {
			dbStatus = "down"
			dbDetails = err.Error()
		}
		services["journal"] = entities.ServiceStatus{
			Status:  dbStatus,
			Details: dbDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Status:   overallStatus,
			Services: services,
			UpSince:  upSince,
			Uptime:   uptime,
		}

		w.Header().Set("Content-Type", "application/json")
		if overallStatus != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
