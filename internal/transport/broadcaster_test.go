package transport

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/clipmesh-go/internal/protocol"
	"github.com/yndnr/clipmesh-go/internal/telemetry/logger"
	"github.com/yndnr/clipmesh-go/internal/telemetry/metric"
)

// deadPeer returns a loopback address with nothing listening on it.
func deadPeer(t *testing.T) Peer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	host, port := splitAddr(t, ln.Addr().String())
	ln.Close()
	return Peer{Host: host, Port: port}
}

func TestPeer_Addr(t *testing.T) {
	tests := []struct {
		peer Peer
		want string
	}{
		{Peer{Host: "192.168.1.20", Port: 5000}, "192.168.1.20:5000"},
		{Peer{Host: "::1", Port: 80}, "[::1]:80"},
		{Peer{Host: "laptop.local", Port: 1}, "laptop.local:1"},
	}
	for _, tt := range tests {
		if got := tt.peer.Addr(); got != tt.want {
			t.Errorf("Addr() = %q, want %q", got, tt.want)
		}
	}
}

func TestBroadcaster_DeliversToAllPeers(t *testing.T) {
	a := startListener(t, ListenerConfig{})
	b := startListener(t, ListenerConfig{})

	m := metric.NewRegistry()
	bc := NewBroadcaster([]Peer{a.peer(t), b.peer(t)}, newTestSealer(t, testKey), time.Second, logger.Discard(), m)

	msg := protocol.NewClipboardUpdate("origin", protocol.ContentText, []byte("hello"))
	if err := bc.Broadcast(context.Background(), msg); err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}

	for _, l := range []*testListener{a, b} {
		got := expectMessage(t, l.out)
		if got.InstanceID != "origin" || string(got.Payload) != "hello" {
			t.Errorf("received %+v, want origin/hello", got)
		}
	}
	if got := testutil.ToFloat64(m.PeerSends.WithLabelValues(metric.SendOK)); got != 2 {
		t.Errorf("peer_sends{ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.PeersConfigured); got != 2 {
		t.Errorf("peers_configured = %v, want 2", got)
	}
}

func TestBroadcaster_DeadPeerDoesNotAbortSiblings(t *testing.T) {
	live := startListener(t, ListenerConfig{})

	m := metric.NewRegistry()
	bc := NewBroadcaster([]Peer{deadPeer(t), live.peer(t)}, newTestSealer(t, testKey), time.Second, logger.Discard(), m)

	if err := bc.Broadcast(context.Background(), protocol.NewClipboardUpdate("o", protocol.ContentText, []byte("x"))); err != nil {
		t.Fatalf("Broadcast() error = %v, want nil for best-effort delivery", err)
	}

	expectMessage(t, live.out)
	if got := testutil.ToFloat64(m.PeerSends.WithLabelValues(metric.SendFailed)); got != 1 {
		t.Errorf("peer_sends{failed} = %v, want 1", got)
	}
}

func TestBroadcaster_TimeoutBoundsCall(t *testing.T) {
	// 192.0.2.0/24 is reserved for documentation; connects either hang or fail fast.
	bc := NewBroadcaster([]Peer{{Host: "192.0.2.1", Port: 5000}}, newTestSealer(t, testKey), 200*time.Millisecond, logger.Discard(), nil)

	start := time.Now()
	if err := bc.Broadcast(context.Background(), protocol.NewClipboardUpdate("o", protocol.ContentText, []byte("x"))); err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Broadcast() took %v, want bounded by the send timeout", elapsed)
	}
}

func TestBroadcaster_NoPeers(t *testing.T) {
	bc := NewBroadcaster(nil, newTestSealer(t, testKey), 0, nil, nil)
	if err := bc.Broadcast(context.Background(), protocol.NewClipboardUpdate("o", protocol.ContentText, nil)); err != nil {
		t.Errorf("Broadcast() error = %v", err)
	}
	if bc.timeout != DefaultSendTimeout {
		t.Errorf("timeout = %v, want %v", bc.timeout, DefaultSendTimeout)
	}
}

func TestBroadcaster_SealErrorReturned(t *testing.T) {
	bc := NewBroadcaster([]Peer{deadPeer(t)}, newTestSealer(t, testKey), time.Second, logger.Discard(), nil)
	msg := &protocol.Message{InstanceID: "\xff", ContentType: protocol.ContentText}

	if err := bc.Broadcast(context.Background(), msg); err == nil {
		t.Error("Broadcast() with unencodable message should return error")
	}
}

func TestBroadcaster_PeersIsCopy(t *testing.T) {
	peers := []Peer{{Host: "a", Port: 1}}
	bc := NewBroadcaster(peers, newTestSealer(t, testKey), time.Second, nil, nil)
	peers[0].Host = "mutated"

	if got := bc.Peers()[0].Host; got != "a" {
		t.Errorf("Peers()[0].Host = %q, want a", got)
	}
}
