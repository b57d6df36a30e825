package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/doshyw/celeste-progression/pkg/catalog"
)

type HealthResponse struct {
	Status     string         `json:"status"`
	Timestamp  time.Time      `json:"timestamp"`
	Service    string         `json:"service"`
	Components map[string]any `json:"components"`
}

type HealthHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewHealthHandler(cat *catalog.Catalog, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		catalog: cat,
		logger:  logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	components := make(map[string]any)
	overallStatus := "healthy"

	if h.catalog == nil || len(h.catalog.Entries()) == 0 {
		h.logger.Warn("Catalog health check failed")
		components["catalog"] = "unhealthy"
		overallStatus = "degraded"
	} else {
		components["catalog"] = map[string]any{
			"status":  "healthy",
			"areas":   len(h.catalog.Areas()),
			"entries": len(h.catalog.Entries()),
		}
	}

	response := HealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Service:    "celeste-progression",
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, h.logger, statusCode, response)
}
