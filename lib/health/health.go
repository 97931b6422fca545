package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"log/slog"
)

// Pinger verifies that the metadata provider accepts our credentials.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health represents the health check response structure.
// It includes the overall status, timestamp, and provider health information.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Provider  struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	} `json:"provider"`
}

// Probe runs a single provider check and reports the result with the HTTP
// status it maps to.
func Probe(ctx context.Context, p Pinger) (Health, int) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health := Health{
		Status:    "ok",
		Timestamp: time.Now(),
	}

	if err := p.Ping(ctx); err != nil {
		slog.Warn("Provider ping failed", slog.Any("error", err))
		health.Status = "degraded"
		health.Provider.Status = "error"
		health.Provider.Message = "Metadata provider ping failed"
		return health, http.StatusServiceUnavailable
	}

	health.Provider.Status = "ok"
	return health, http.StatusOK
}

// Check returns an HTTP handler that reports whether the metadata provider
// is reachable with the configured credentials.
func Check(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health, status := Probe(r.Context(), p)
		writeHealth(w, health, status)
	}
}

// writeHealth writes the health check response to the HTTP response writer.
func writeHealth(w http.ResponseWriter, health Health, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Error("Failed to encode health response", slog.Any("error", err))
	}
}
