package clipboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
)

// System is the desktop clipboard. Only text is supported by the underlying
// tools; file lists round-trip as file:// URIs.
type System struct {
	interval time.Duration
	logger   *slog.Logger

	// read and write are the clipboard primitives, swappable in tests.
	read  func() (string, error)
	write func(string) error

	once sync.Once
	done chan struct{}
}

func systemAvailable() bool {
	return !clipboard.Unsupported
}

// NewSystem returns the system clipboard sampled every interval.
func NewSystem(interval time.Duration, logger *slog.Logger) *System {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &System{
		interval: interval,
		logger:   logger,
		read:     clipboard.ReadAll,
		write:    clipboard.WriteAll,
		done:     make(chan struct{}),
	}
}

// Name implements Backend.
func (s *System) Name() string { return BackendSystem }

// Read implements Backend.
func (s *System) Read() (*domain.Item, error) {
	text, err := s.read()
	if err != nil {
		return nil, err
	}
	return itemFromText(text), nil
}

// Write implements Backend.
func (s *System) Write(item domain.Item) error {
	text, err := textFromItem(item)
	if err != nil {
		return err
	}
	return s.write(text)
}

// Watch polls the clipboard and signals when its text changes. The content
// present when Watch is called is the baseline and does not signal.
func (s *System) Watch(ctx context.Context) (<-chan struct{}, error) {
	last, err := s.read()
	if err != nil {
		s.logger.Debug("initial clipboard read failed", "error", err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
				current, err := s.read()
				if err != nil {
					s.logger.Debug("clipboard poll failed", "error", err)
					continue
				}
				if current == last {
					continue
				}
				last = current
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, nil
}

// Close implements Backend.
func (s *System) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}
