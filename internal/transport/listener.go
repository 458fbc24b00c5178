package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/clipmesh-go/internal/protocol"
	"github.com/yndnr/clipmesh-go/internal/telemetry/metric"
)

const (
	// MaxFrameBody is the hard ceiling on a declared frame body length.
	MaxFrameBody = 50 << 20

	// DefaultReadTimeout bounds reading one whole frame.
	DefaultReadTimeout = 30 * time.Second
)

// ListenerConfig holds the listener configuration.
type ListenerConfig struct {
	// Addr is the TCP address to bind, e.g. ":5000".
	Addr string
	// ReadTimeout covers reading both the length prefix and the body (default: 30s).
	ReadTimeout time.Duration
	// MaxFrameBody caps the declared body length (default and maximum: 50 MiB).
	MaxFrameBody uint32
	// RateLimit is the maximum number of connections per second per remote IP.
	// Set to 0 to disable rate limiting.
	RateLimit int
}

// Listener accepts one-shot connections, each carrying a single frame, and
// forwards the decoded messages to a channel.
type Listener struct {
	cfg     ListenerConfig
	sealer  *Sealer
	out     chan<- *protocol.Message
	logger  *slog.Logger
	metrics *metric.Registry
	limiter *ipLimiter

	ln      net.Listener
	running atomic.Bool
	serving atomic.Bool
	done    chan struct{}
	served  chan struct{}
	wg      sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// NewListener creates a listener. Decoded messages are sent to out, which the
// listener closes once Serve returns. logger and metrics may be nil.
func NewListener(cfg ListenerConfig, sealer *Sealer, out chan<- *protocol.Message, logger *slog.Logger, metrics *metric.Registry) *Listener {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.MaxFrameBody == 0 || cfg.MaxFrameBody > MaxFrameBody {
		cfg.MaxFrameBody = MaxFrameBody
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Listener{
		cfg:     cfg,
		sealer:  sealer,
		out:     out,
		logger:  logger,
		metrics: metrics,
		limiter: newIPLimiter(cfg.RateLimit),
		done:    make(chan struct{}),
		served:  make(chan struct{}),
		conns:   make(map[net.Conn]struct{}),
	}
}

// Listen binds the TCP socket.
func (l *Listener) Listen() error {
	ln, err := net.Listen("tcp", l.cfg.Addr)
	if err != nil {
		return fmt.Errorf("transport: listen %s: %w", l.cfg.Addr, err)
	}
	l.ln = ln
	l.running.Store(true)
	l.logger.Info("listener started", "address", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (l *Listener) Addr() net.Addr {
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

// Serving reports whether the listener is bound and accepting.
func (l *Listener) Serving() bool {
	return l.running.Load() && l.serving.Load()
}

// Serve runs the accept loop until Shutdown is called or ctx is cancelled.
// It waits for in-flight connections, then closes the output channel.
func (l *Listener) Serve(ctx context.Context) error {
	if l.ln == nil {
		return errors.New("transport: Serve called before Listen")
	}
	l.serving.Store(true)
	defer close(l.served)

	stop := context.AfterFunc(ctx, func() { _ = l.close() })
	defer stop()

	err := l.acceptLoop(ctx)

	l.wg.Wait()
	close(l.out)
	return err
}

// Shutdown closes the socket, aborts in-flight connections and waits for
// Serve to return.
func (l *Listener) Shutdown(ctx context.Context) error {
	if l.ln == nil {
		return nil
	}
	err := l.close()
	if !l.serving.Load() {
		return err
	}

	select {
	case <-l.served:
	case <-ctx.Done():
		return ctx.Err()
	}
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (l *Listener) close() error {
	if !l.running.CompareAndSwap(true, false) {
		return nil
	}
	close(l.done)
	err := l.ln.Close()

	l.mu.Lock()
	for c := range l.conns {
		_ = c.Close()
	}
	l.mu.Unlock()
	return err
}

func (l *Listener) acceptLoop(ctx context.Context) error {
	for {
		c, err := l.ln.Accept()
		if err != nil {
			if !l.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return err
		}

		if !l.limiter.Allow(remoteIP(c.RemoteAddr())) {
			l.metrics.RecordFrame(metric.FrameRateLimited)
			l.logger.Warn("connection rate limited", "remote", c.RemoteAddr().String())
			_ = c.Close()
			continue
		}

		if !l.track(c) {
			_ = c.Close()
			return nil
		}
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			defer l.untrack(c)
			l.handleConn(ctx, c)
		}()
	}
}

func (l *Listener) track(c net.Conn) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running.Load() {
		return false
	}
	l.conns[c] = struct{}{}
	return true
}

func (l *Listener) untrack(c net.Conn) {
	l.mu.Lock()
	delete(l.conns, c)
	l.mu.Unlock()
}

func (l *Listener) handleConn(ctx context.Context, c net.Conn) {
	defer c.Close()
	remote := c.RemoteAddr().String()

	msg, err := l.receive(c)
	if err != nil {
		result := frameResult(err)
		l.metrics.RecordFrame(result)
		switch result {
		case metric.FrameTimeout:
			l.logger.Debug("connection timed out", "remote", remote)
		case metric.FrameError:
			if l.running.Load() {
				l.logger.Debug("connection read error", "remote", remote, "error", err)
			}
		default:
			l.logger.Warn("frame rejected", "remote", remote, "reason", result, "error", err)
		}
		return
	}

	l.metrics.RecordFrame(metric.FrameOK)
	if msg.SizeMismatch() {
		l.logger.Warn("payload_size disagrees with payload length",
			"remote", remote,
			"payload_size", msg.PayloadSize,
			"bytes", len(msg.Payload))
	}
	l.logger.Debug("frame received",
		"remote", remote,
		"instance_id", msg.InstanceID,
		"content_type", msg.ContentType.String(),
		"bytes", len(msg.Payload))

	select {
	case l.out <- msg:
	case <-l.done:
	case <-ctx.Done():
	}
}

// receive reads and opens exactly one frame under a single deadline.
func (l *Listener) receive(c net.Conn) (*protocol.Message, error) {
	if err := c.SetReadDeadline(time.Now().Add(l.cfg.ReadTimeout)); err != nil {
		return nil, err
	}

	var hdr [protocol.FrameHeaderSize]byte
	if _, err := io.ReadFull(c, hdr[:]); err != nil {
		return nil, readError("length prefix", err)
	}

	n := protocol.FrameLength(hdr)
	if n > l.cfg.MaxFrameBody {
		return nil, fmt.Errorf("%w: %d bytes declared, limit %d", ErrFrameTooLarge, n, l.cfg.MaxFrameBody)
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(c, body); err != nil {
		return nil, readError("body", err)
	}

	return l.sealer.Open(body)
}

func readError(what string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: reading %s", ErrReadTimeout, what)
	}
	return fmt.Errorf("transport: read %s: %w", what, err)
}

func frameResult(err error) string {
	switch {
	case errors.Is(err, ErrFrameTooLarge):
		return metric.FrameTooLarge
	case errors.Is(err, ErrReadTimeout):
		return metric.FrameTimeout
	case errors.Is(err, ErrDecryptFailed), errors.Is(err, ErrFrameTooShort):
		return metric.FrameDecryptFailed
	case errors.Is(err, ErrDecode):
		return metric.FrameDecodeFailed
	default:
		return metric.FrameError
	}
}

func remoteIP(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
