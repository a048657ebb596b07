package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"
)

type BrokerStatus interface {
	IsClosed() bool
}

type HealthHandler struct {
	DB        *sql.DB
	Broker    BrokerStatus
	CMSURL    string
	StoreSize func() int
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	RendezVous   int               `json:"rendezVous"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, broker BrokerStatus, cmsURL string, storeSize func() int) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		Broker:    broker,
		CMSURL:    cmsURL,
		StoreSize: storeSize,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.Broker != nil {
		if h.Broker.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.CMSURL != "" {
		deps["cms"] = "configured"
	} else {
		deps["cms"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	resp := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}
	if h.StoreSize != nil {
		resp.RendezVous = h.StoreSize()
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}
