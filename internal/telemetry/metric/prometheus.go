package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clipmesh"

// Frame results recorded by the listener.
const (
	FrameOK            = "ok"
	FrameTooLarge      = "too_large"
	FrameTimeout       = "timeout"
	FrameDecryptFailed = "decrypt_failed"
	FrameDecodeFailed  = "decode_failed"
	FrameRateLimited   = "rate_limited"
	FrameError         = "error"
)

// Peer send results recorded by the broadcaster.
const (
	SendOK      = "ok"
	SendFailed  = "failed"
	SendTimeout = "timeout"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Transport metrics
	FramesReceived    *prometheus.CounterVec
	PeerSends         *prometheus.CounterVec
	BroadcastDuration prometheus.Histogram
	PeersConfigured   prometheus.Gauge

	// Coordinator metrics
	Broadcasts        prometheus.Counter
	EchoesSuppressed  prometheus.Counter
	DuplicatesSkipped prometheus.Counter
	SelfLoopDropped   prometheus.Counter
	ItemsApplied      *prometheus.CounterVec
	FileBatchRejected prometheus.Counter
}

// NewRegistry creates a registry with Go runtime and process collectors
// plus every clipmesh metric.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		FramesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_received_total",
			Help:      "Inbound connections handled by the listener, by result.",
		}, []string{"result"}),
		PeerSends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "peer_sends_total",
			Help:      "Per-peer frame deliveries, by result.",
		}, []string{"result"}),
		BroadcastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "broadcast_duration_seconds",
			Help:      "Time for a broadcast to finish on every peer.",
			Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5},
		}),
		PeersConfigured: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "peers_configured",
			Help:      "Number of configured peers.",
		}),
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_total",
			Help:      "Local clipboard changes broadcast to peers.",
		}),
		EchoesSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "echoes_suppressed_total",
			Help:      "Local change signals discarded as echoes of a remote write.",
		}),
		DuplicatesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_skipped_total",
			Help:      "Local change signals whose content matched the last broadcast.",
		}),
		SelfLoopDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "self_loop_dropped_total",
			Help:      "Inbound messages discarded because they carried our own instance id.",
		}),
		ItemsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_applied_total",
			Help:      "Remote clipboard items written locally, by content type.",
		}, []string{"content_type"}),
		FileBatchRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_batches_rejected_total",
			Help:      "Outbound file lists dropped because a file exceeded max_file_size.",
		}),
	}

	reg.MustRegister(
		r.FramesReceived,
		r.PeerSends,
		r.BroadcastDuration,
		r.PeersConfigured,
		r.Broadcasts,
		r.EchoesSuppressed,
		r.DuplicatesSkipped,
		r.SelfLoopDropped,
		r.ItemsApplied,
		r.FileBatchRejected,
	)
	return r
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler returns an HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// Handler returns an HTTP handler exposing this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordFrame counts an inbound connection outcome.
func (r *Registry) RecordFrame(result string) {
	if r == nil {
		return
	}
	r.FramesReceived.WithLabelValues(result).Inc()
}

// RecordPeerSend counts a per-peer delivery outcome.
func (r *Registry) RecordPeerSend(result string) {
	if r == nil {
		return
	}
	r.PeerSends.WithLabelValues(result).Inc()
}

// ObserveBroadcast records how long a broadcast took in seconds.
func (r *Registry) ObserveBroadcast(seconds float64) {
	if r == nil {
		return
	}
	r.BroadcastDuration.Observe(seconds)
}

// SetPeers records the configured peer count.
func (r *Registry) SetPeers(n int) {
	if r == nil {
		return
	}
	r.PeersConfigured.Set(float64(n))
}

// IncBroadcast counts a broadcast.
func (r *Registry) IncBroadcast() {
	if r == nil {
		return
	}
	r.Broadcasts.Inc()
}

// IncEchoSuppressed counts a discarded echo.
func (r *Registry) IncEchoSuppressed() {
	if r == nil {
		return
	}
	r.EchoesSuppressed.Inc()
}

// IncDuplicateSkipped counts a skipped duplicate.
func (r *Registry) IncDuplicateSkipped() {
	if r == nil {
		return
	}
	r.DuplicatesSkipped.Inc()
}

// IncSelfLoopDropped counts an inbound message carrying our own id.
func (r *Registry) IncSelfLoopDropped() {
	if r == nil {
		return
	}
	r.SelfLoopDropped.Inc()
}

// RecordApplied counts a remote item written to the clipboard.
func (r *Registry) RecordApplied(contentType string) {
	if r == nil {
		return
	}
	r.ItemsApplied.WithLabelValues(contentType).Inc()
}

// IncFileBatchRejected counts an outbound file list dropped for size.
func (r *Registry) IncFileBatchRejected() {
	if r == nil {
		return
	}
	r.FileBatchRejected.Inc()
}
