// Package shutdown provides graceful shutdown for clipmesh.
//
// A Handler waits for SIGINT, SIGTERM or context cancellation, then runs
// the registered hooks in reverse order of registration under one
// deadline:
//
//	h := shutdown.NewHandler(10*time.Second, logger)
//	h.OnShutdown("listener", listener.Shutdown)
//	err := h.Wait(ctx)
package shutdown
