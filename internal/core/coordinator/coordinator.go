package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
	"github.com/yndnr/clipmesh-go/internal/protocol"
	"github.com/yndnr/clipmesh-go/internal/telemetry/metric"
)

// DefaultSuppressWindow is how long a remote write's echo is expected.
const DefaultSuppressWindow = 1500 * time.Millisecond

// Clipboard is the local clipboard as seen by the coordinator.
type Clipboard interface {
	// Read returns the current item, or nil when the clipboard is empty or
	// holds nothing the backend understands.
	Read() (*domain.Item, error)
	// Write replaces the clipboard content.
	Write(item domain.Item) error
}

// Broadcaster delivers a message to every peer, best effort.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *protocol.Message) error
}

// Config holds the coordinator settings.
type Config struct {
	// InstanceID identifies this process on the wire. Required.
	InstanceID string
	// MaxFileSize caps each outbound file, in bytes.
	MaxFileSize uint64
	// DownloadDir receives inbound files.
	DownloadDir string
	// SuppressWindow is the echo window after a remote write (default: 1.5s).
	SuppressWindow time.Duration
	// ContinueOnError logs clipboard and file I/O failures instead of
	// stopping the loop.
	ContinueOnError bool
}

// Coordinator owns dedup and echo-suppression state. It is driven by Run and
// must not be shared across goroutines.
type Coordinator struct {
	cfg       Config
	clipboard Clipboard
	caster    Broadcaster
	changes   <-chan struct{}
	inbound   <-chan *protocol.Message

	logger  *slog.Logger
	metrics *metric.Registry
	now     func() time.Time

	lastBroadcast    uint64
	hasLastBroadcast bool
	suppress         suppression
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a coordinator reading change signals from changes and remote
// messages from inbound.
func New(cfg Config, cb Clipboard, caster Broadcaster, changes <-chan struct{}, inbound <-chan *protocol.Message, opts ...Option) (*Coordinator, error) {
	if cfg.InstanceID == "" {
		return nil, errors.New("coordinator: instance id is required")
	}
	if cb == nil || caster == nil {
		return nil, errors.New("coordinator: clipboard and broadcaster are required")
	}
	if cfg.SuppressWindow <= 0 {
		cfg.SuppressWindow = DefaultSuppressWindow
	}

	c := &Coordinator{
		cfg:       cfg,
		clipboard: cb,
		caster:    caster,
		changes:   changes,
		inbound:   inbound,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("instance_id", cfg.InstanceID)
	return c, nil
}

// Run processes events until both input channels are closed or ctx is done.
// It returns a non-nil error only for a fatal clipboard or file I/O failure.
func (c *Coordinator) Run(ctx context.Context) error {
	changes, inbound := c.changes, c.inbound
	c.logger.Debug("clipboard sync started")

	for changes != nil || inbound != nil {
		var err error
		select {
		case <-ctx.Done():
			c.logger.Debug("clipboard sync stopped", "reason", ctx.Err())
			return nil
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			err = c.handleLocalChange(ctx)
		case msg, ok := <-inbound:
			if !ok {
				inbound = nil
				continue
			}
			err = c.handleInbound(msg)
		}
		if err = c.checkError(err); err != nil {
			c.logger.Error("clipboard sync stopped", "error", err)
			return err
		}
	}

	c.logger.Debug("clipboard sync finished", "reason", "inputs closed")
	return nil
}

// checkError applies the error policy. Per-item errors are always dropped;
// I/O errors stop the loop unless ContinueOnError is set.
func (c *Coordinator) checkError(err error) error {
	if err == nil {
		return nil
	}
	var de *domain.DomainError
	if errors.As(err, &de) && !de.Fatal() {
		c.logger.Warn("item skipped", "code", de.Code, "error", err)
		return nil
	}
	if c.cfg.ContinueOnError {
		c.logger.Error("sync step failed", "code", domain.GetErrorCode(err), "error", err)
		return nil
	}
	return err
}

func (c *Coordinator) handleLocalChange(ctx context.Context) error {
	if c.suppress.armed {
		if c.suppress.active(c.now()) {
			item, err := c.read()
			if err != nil {
				return err
			}
			if item == nil {
				c.metrics.IncEchoSuppressed()
				c.logger.Debug("suppressed clipboard echo", "reason", "empty read")
				return nil
			}
			fp := fingerprint(*item)
			if c.suppress.matches(fp) {
				c.metrics.IncEchoSuppressed()
				c.logger.Debug("suppressed clipboard echo", "reason", "fingerprint match")
				return nil
			}
			c.logger.Debug("fingerprint mismatch during suppress window, treating as local edit")
			c.suppress.clear()
			return c.publish(ctx, *item, fp)
		}
		c.logger.Debug("suppress window expired")
		c.suppress.clear()
	}

	item, err := c.read()
	if err != nil || item == nil {
		return err
	}
	return c.publish(ctx, *item, fingerprint(*item))
}

// publish broadcasts item unless its fingerprint equals the last broadcast.
func (c *Coordinator) publish(ctx context.Context, item domain.Item, fp uint64) error {
	if c.hasLastBroadcast && c.lastBroadcast == fp {
		c.metrics.IncDuplicateSkipped()
		c.logger.Debug("clipboard unchanged since last broadcast", "item", item.String())
		return nil
	}
	c.lastBroadcast, c.hasLastBroadcast = fp, true
	c.logger.Info("local clipboard changed", "item", item.String())

	msg, err := c.buildMessage(item)
	if err != nil || msg == nil {
		return err
	}
	if err := c.caster.Broadcast(ctx, msg); err != nil {
		c.logger.Error("broadcast failed", "error", err)
		return nil
	}
	c.metrics.IncBroadcast()
	return nil
}

func (c *Coordinator) handleInbound(msg *protocol.Message) error {
	if msg.InstanceID == c.cfg.InstanceID {
		c.metrics.IncSelfLoopDropped()
		c.logger.Debug("dropping message carrying our own instance id")
		return nil
	}
	c.logger.Info("received remote clipboard",
		"from", msg.InstanceID,
		"content_type", msg.ContentType.String(),
		"bytes", len(msg.Payload))

	item, err := c.decodeItem(msg)
	if err != nil {
		return err
	}

	fp := fingerprint(item)
	c.suppress.arm(c.now().Add(c.cfg.SuppressWindow), fp)
	c.lastBroadcast, c.hasLastBroadcast = fp, true
	c.logger.Debug("suppress window armed", "window", c.cfg.SuppressWindow)

	if err := c.write(item); err != nil {
		return err
	}
	c.metrics.RecordApplied(msg.ContentType.String())
	return nil
}

func (c *Coordinator) read() (*domain.Item, error) {
	item, err := c.clipboard.Read()
	if err != nil {
		if errors.Is(err, domain.ErrUnsupported) {
			return nil, nil
		}
		return nil, domain.ErrClipboardRead.Wrap(err)
	}
	return item, nil
}

func (c *Coordinator) write(item domain.Item) error {
	err := c.clipboard.Write(item)
	if err == nil || errors.Is(err, domain.ErrUnsupported) {
		return err
	}
	return domain.ErrClipboardWrite.Wrap(err)
}
