package handlers

import (
	"log"
	"net/http"
	"time"
)

type HealthResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Database    string    `json:"database"`
	Tables      int       `json:"tables"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Timestamp:   time.Now().UTC(),
		Environment: h.Cfg.Env,
		Database:    "up",
	}

	if err := h.TablesService.Ping(r.Context()); err != nil {
		log.Printf("health check: database ping failed: %v", err)
		health.Database = "down"
		WriteJSON(w, http.StatusServiceUnavailable, Response{Success: false, Message: "Database unavailable", Data: health})
		return
	}

	count, err := h.TablesService.GetCountTablesBD(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "")
		return
	}
	health.Tables = count

	writeSuccess(w, http.StatusOK, "Server is healthy", health)
}
