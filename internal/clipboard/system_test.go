package clipboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
	"github.com/yndnr/clipmesh-go/internal/telemetry/logger"
)

// fakeTool stands in for xclip and friends.
type fakeTool struct {
	mu   sync.Mutex
	text string
	err  error
}

func (f *fakeTool) read() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.err
}

func (f *fakeTool) write(s string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = s
	return nil
}

func newTestSystem(tool *fakeTool) *System {
	s := NewSystem(10*time.Millisecond, logger.Discard())
	s.read = tool.read
	s.write = tool.write
	return s
}

func TestSystem_ReadWrite(t *testing.T) {
	tool := &fakeTool{}
	s := newTestSystem(tool)

	if item, err := s.Read(); err != nil || item != nil {
		t.Fatalf("Read() empty = (%v, %v), want (nil, nil)", item, err)
	}
	if err := s.Write(domain.TextItem("hi")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	item, err := s.Read()
	if err != nil || item == nil || item.Text != "hi" {
		t.Errorf("Read() = (%+v, %v), want hi", item, err)
	}
	if err := s.Write(domain.ImageItem([]byte{1})); !errors.Is(err, domain.ErrUnsupported) {
		t.Errorf("Write(image) error = %v, want ErrUnsupported", err)
	}
}

func TestSystem_ReadError(t *testing.T) {
	tool := &fakeTool{err: errors.New("xclip: exit status 1")}
	if _, err := newTestSystem(tool).Read(); err == nil {
		t.Error("Read() should surface tool errors")
	}
}

func TestSystem_WatchPolls(t *testing.T) {
	tool := &fakeTool{text: "baseline"}
	s := newTestSystem(tool)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	select {
	case <-ch:
		t.Fatal("baseline content must not signal")
	case <-time.After(50 * time.Millisecond):
	}

	_ = tool.write("changed")
	expectSignal(t, ch)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	expectClosed(t, ch)
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
