package clipboard

import (
	"context"
	"sync"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
)

// Memory is an in-process clipboard. Every Write signals all watchers, the
// way a desktop clipboard reports its own writes.
type Memory struct {
	mu       sync.Mutex
	item     *domain.Item
	watchers map[chan struct{}]struct{}
	closed   bool
}

// NewMemory returns an empty memory clipboard.
func NewMemory() *Memory {
	return &Memory{watchers: make(map[chan struct{}]struct{})}
}

// Name implements Backend.
func (m *Memory) Name() string { return BackendMemory }

// Read implements Backend.
func (m *Memory) Read() (*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.item == nil {
		return nil, nil
	}
	item := *m.item
	return &item, nil
}

// Write implements Backend.
func (m *Memory) Write(item domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.item = &item
	m.notifyLocked()
	return nil
}

// Set replaces the content as a user edit would. It is Write without an error.
func (m *Memory) Set(item domain.Item) {
	_ = m.Write(item)
}

// Clear empties the clipboard and signals watchers.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.item = nil
	m.notifyLocked()
}

// Watch implements Backend.
func (m *Memory) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 16)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		close(ch)
		return ch, nil
	}
	m.watchers[ch] = struct{}{}

	context.AfterFunc(ctx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.watchers[ch]; ok {
			delete(m.watchers, ch)
			close(ch)
		}
	})
	return ch, nil
}

// Close implements Backend.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for ch := range m.watchers {
		delete(m.watchers, ch)
		close(ch)
	}
	return nil
}

func (m *Memory) notifyLocked() {
	for ch := range m.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
