// Package httpserver provides the optional status endpoint for clipmesh.
//
// Routes:
//
//   - GET /health: liveness and build information
//   - GET /ready: 200 while the sync listener accepts connections, else 503
//   - GET /metrics: Prometheus exposition
//
// The endpoint is disabled unless metrics.addr is configured.
package httpserver
