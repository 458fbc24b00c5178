package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
	"github.com/yndnr/clipmesh-go/internal/protocol"
	"github.com/yndnr/clipmesh-go/internal/telemetry/logger"
	"github.com/yndnr/clipmesh-go/internal/telemetry/metric"
)

type fakeClipboard struct {
	mu       sync.Mutex
	item     *domain.Item
	readErr  error
	writeErr error
	writes   []domain.Item
}

func (f *fakeClipboard) Read() (*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	if f.item == nil {
		return nil, nil
	}
	item := *f.item
	return &item, nil
}

func (f *fakeClipboard) Write(item domain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.item = &item
	f.writes = append(f.writes, item)
	return nil
}

func (f *fakeClipboard) set(item domain.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.item = &item
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	msgs []*protocol.Message
	err  error
}

func (f *fakeBroadcaster) Broadcast(_ context.Context, msg *protocol.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeBroadcaster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func (f *fakeBroadcaster) last(t *testing.T) *protocol.Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.msgs) == 0 {
		t.Fatal("no message broadcast")
	}
	return f.msgs[len(f.msgs)-1]
}

// fakeClock is a manually advanced clock.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	*Coordinator
	cb      *fakeClipboard
	caster  *fakeBroadcaster
	clock   *fakeClock
	metrics *metric.Registry
}

func newHarness(t *testing.T, mutate func(*Config)) *harness {
	t.Helper()
	cfg := Config{
		InstanceID:  "node-a",
		MaxFileSize: 1 << 20,
		DownloadDir: t.TempDir(),
	}
	if mutate != nil {
		mutate(&cfg)
	}

	h := &harness{
		cb:      &fakeClipboard{},
		caster:  &fakeBroadcaster{},
		clock:   &fakeClock{now: time.Unix(1_700_000_000, 0)},
		metrics: metric.NewRegistry(),
	}
	c, err := New(cfg, h.cb, h.caster, nil, nil,
		WithLogger(logger.Discard()),
		WithMetrics(h.metrics),
		WithClock(h.clock.Now))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.Coordinator = c
	return h
}

func (h *harness) local(t *testing.T) {
	t.Helper()
	if err := h.handleLocalChange(context.Background()); err != nil {
		t.Fatalf("handleLocalChange() error = %v", err)
	}
}

func (h *harness) remote(t *testing.T, from string, ct protocol.ContentType, payload []byte) {
	t.Helper()
	if err := h.handleInbound(protocol.NewClipboardUpdate(from, ct, payload)); err != nil {
		t.Fatalf("handleInbound() error = %v", err)
	}
}

var errBoom = errors.New("boom")
