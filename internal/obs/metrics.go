package obs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// Metrics tracks application metrics using atomic counters.
type Metrics struct {
	requests        atomic.Int64
	invalidRequests atomic.Int64
	providerErrors  atomic.Int64
	logger          *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger,
	}
}

// IncRequests increments the search request counter.
func (m *Metrics) IncRequests() {
	m.requests.Add(1)
}

// IncInvalidRequests increments the rejected search request counter.
func (m *Metrics) IncInvalidRequests() {
	m.invalidRequests.Add(1)
}

// IncProviderErrors increments the provider errors counter.
func (m *Metrics) IncProviderErrors() {
	m.providerErrors.Add(1)
}

// Snapshot returns current metric values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:        m.requests.Load(),
		InvalidRequests: m.invalidRequests.Load(),
		ProviderErrors:  m.providerErrors.Load(),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	Requests        int64
	InvalidRequests int64
	ProviderErrors  int64
}

type counter struct {
	name  string
	help  string
	value int64
}

func (s MetricsSnapshot) counters() []counter {
	return []counter{
		{name: "search_requests_total", help: "Total number of search requests", value: s.Requests},
		{name: "search_invalid_total", help: "Total number of rejected search requests", value: s.InvalidRequests},
		{name: "provider_errors_total", help: "Total number of provider errors", value: s.ProviderErrors},
	}
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}

// HealthHandler returns a handler for /api/health requests.
//
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func HealthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		resp := HealthResponse{OK: true, Time: time.Now().UTC().Format(time.RFC3339)}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to write health response", "error", err)
		}
	}
}

// MetricsHandler returns a handler for /metrics requests in Prometheus format.
func (m *Metrics) MetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := m.Snapshot()

		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)

		for _, c := range snapshot.counters() {
			if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", c.name, c.help, c.name, c.name, c.value); err != nil {
				m.logger.Error("failed to write metrics", "error", err)
				return
			}
		}
	}
}
