package transport

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yndnr/clipmesh-go/internal/protocol"
	"github.com/yndnr/clipmesh-go/internal/telemetry/metric"
)

// DefaultSendTimeout bounds connect plus write for one peer.
const DefaultSendTimeout = 2 * time.Second

// Peer is a remote clipmesh instance.
type Peer struct {
	Host string
	Port uint16
}

// Addr returns host:port, bracketing IPv6 literals.
func (p Peer) Addr() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(int(p.Port)))
}

// Broadcaster sends a message to every configured peer.
type Broadcaster struct {
	peers   []Peer
	sealer  *Sealer
	timeout time.Duration
	dialer  net.Dialer
	logger  *slog.Logger
	metrics *metric.Registry
}

// NewBroadcaster creates a broadcaster. The peer list is copied and never
// changes afterwards. logger and metrics may be nil.
func NewBroadcaster(peers []Peer, sealer *Sealer, timeout time.Duration, logger *slog.Logger, metrics *metric.Registry) *Broadcaster {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	metrics.SetPeers(len(peers))

	return &Broadcaster{
		peers:   append([]Peer(nil), peers...),
		sealer:  sealer,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}
}

// Peers returns a copy of the peer list.
func (b *Broadcaster) Peers() []Peer {
	return append([]Peer(nil), b.peers...)
}

// Broadcast seals msg once and delivers the same frame to every peer
// concurrently. Per-peer failures are logged and never returned; the call
// returns once every attempt has finished or timed out. An error is returned
// only when msg cannot be sealed.
func (b *Broadcaster) Broadcast(ctx context.Context, msg *protocol.Message) error {
	frame, err := b.sealer.Seal(msg)
	if err != nil {
		return err
	}
	if len(b.peers) == 0 {
		return nil
	}

	id := ulid.Make().String()
	start := time.Now()
	log := b.logger.With("broadcast_id", id)
	log.Debug("broadcasting",
		"content_type", msg.ContentType.String(),
		"bytes", len(frame),
		"peers", len(b.peers))

	var g errgroup.Group
	for _, p := range b.peers {
		g.Go(func() error {
			b.sendTo(ctx, log, p, frame)
			return nil
		})
	}
	_ = g.Wait()

	b.metrics.ObserveBroadcast(time.Since(start).Seconds())
	return nil
}

func (b *Broadcaster) sendTo(ctx context.Context, log *slog.Logger, p Peer, frame []byte) {
	addr := p.Addr()
	err := b.send(ctx, addr, frame)
	switch {
	case err == nil:
		b.metrics.RecordPeerSend(metric.SendOK)
		log.Debug("sent to peer", "peer", addr)
	case isTimeout(err):
		b.metrics.RecordPeerSend(metric.SendTimeout)
		log.Debug("peer send timed out", "peer", addr)
	default:
		b.metrics.RecordPeerSend(metric.SendFailed)
		log.Warn("peer send failed", "peer", addr, "error", err)
	}
}

// send dials addr and writes frame, all within b.timeout.
func (b *Broadcaster) send(ctx context.Context, addr string, frame []byte) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	conn, err := b.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}
	_, err = conn.Write(frame)
	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
