package transport

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/yndnr/clipmesh-go/internal/protocol"
	"github.com/yndnr/clipmesh-go/internal/telemetry/logger"
	"github.com/yndnr/clipmesh-go/internal/telemetry/metric"
	"github.com/yndnr/clipmesh-go/pkg/crypto/aead"
)

var testKey = bytes.Repeat([]byte{0x11}, aead.KeySize)

func newTestSealer(t *testing.T, key []byte) *Sealer {
	t.Helper()
	c, err := aead.New(key)
	if err != nil {
		t.Fatalf("aead.New() error = %v", err)
	}
	return NewSealer(c)
}

type testListener struct {
	*Listener
	out     chan *protocol.Message
	metrics *metric.Registry
}

// startListener binds on a loopback port and serves until the test ends.
func startListener(t *testing.T, cfg ListenerConfig) *testListener {
	t.Helper()
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:0"
	}
	out := make(chan *protocol.Message, 8)
	m := metric.NewRegistry()
	l := NewListener(cfg, newTestSealer(t, testKey), out, logger.Discard(), m)
	if err := l.Listen(); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- l.Serve(context.Background()) }()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
		if err := <-errCh; err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	})
	return &testListener{Listener: l, out: out, metrics: m}
}

func (l *testListener) peer(t *testing.T) Peer {
	t.Helper()
	addr := l.Addr().String()
	host, port := splitAddr(t, addr)
	return Peer{Host: host, Port: port}
}

func expectMessage(t *testing.T, ch <-chan *protocol.Message) *protocol.Message {
	t.Helper()
	select {
	case m, ok := <-ch:
		if !ok {
			t.Fatal("channel closed, want message")
		}
		return m
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func expectNoMessage(t *testing.T, ch <-chan *protocol.Message) {
	t.Helper()
	select {
	case m := <-ch:
		t.Fatalf("unexpected message from %q", m.InstanceID)
	case <-time.After(200 * time.Millisecond):
	}
}
