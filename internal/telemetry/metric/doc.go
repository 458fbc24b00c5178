// Package metric provides Prometheus metrics for clipmesh.
//
//   - prometheus.go: registry, counters and the HTTP handler
//
// Metrics include:
//
//   - Inbound frames and outbound peer sends by result
//   - Broadcast count and latency
//   - Echo suppression and dedup decisions
//   - Remote items applied by content type
//
// Every recording method is safe on a nil *Registry, so components can be
// built without metrics. Metrics are exposed at /metrics in Prometheus format.
package metric
