package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/yndnr/clipmesh-go/internal/infra/buildinfo"
)

// RouterConfig holds configuration for the status router.
type RouterConfig struct {
	// InstanceID is reported by /health.
	InstanceID string

	// Peers is the number of configured peers, reported by /health.
	Peers int

	// Ready reports whether synchronization is accepting peers. A nil
	// function is always ready.
	Ready func() bool

	// Metrics serves /metrics. A nil handler disables the route.
	Metrics http.Handler

	// Logger for panics.
	Logger *slog.Logger
}

// NewRouter creates the status routes.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "healthy",
			"instance_id": cfg.InstanceID,
			"peers":       cfg.Peers,
			"version":     buildinfo.Get(),
			"time":        time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil && !cfg.Ready() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	return Chain(mux, RequestID(), Recover(cfg.Logger))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
