package handler

import (
	"net/http"

	"github.com/aldisaputra17/chatbot-backend/internal/api/response"
	mongodb "github.com/aldisaputra17/chatbot-backend/internal/repository/mongo"
)

// Root returns the liveness message served at /
func Root(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"message": "Chatbot Backend is running",
	})
}

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including store connectivity
func ReadyCheck(db *mongodb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "store not ready")
			return
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}
