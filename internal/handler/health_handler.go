package handler

import (
	"context"
	"net/http"
	"time"

	"admin-console/internal/apiclient"
)

type pinger interface {
	Ping(ctx context.Context) apiclient.PingResult
	BaseURL() string
}

type HealthHandler struct {
	backend pinger
	started time.Time
}

func NewHealthHandler(backend pinger) *HealthHandler {
	return &HealthHandler{backend: backend, started: time.Now()}
}

type healthReport struct {
	Status     string `json:"status"`
	Uptime     string `json:"uptime"`
	APIBaseURL string `json:"api_base_url"`
	BackendOK  *bool  `json:"backend_ok,omitempty"`
}

// Health reports liveness. With ?deep=1 it also pings the backend; the
// console stays healthy either way since it can still show login.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	report := healthReport{
		Status:     "ok",
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		APIBaseURL: h.backend.BaseURL(),
	}

	if r.URL.Query().Get("deep") == "1" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		ok := h.backend.Ping(ctx).OK
		report.BackendOK = &ok
	}

	writeSuccess(w, http.StatusOK, report)
}
