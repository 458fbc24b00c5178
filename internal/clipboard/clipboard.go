package clipboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
)

// Backend names accepted by Open.
const (
	BackendAuto   = "auto"
	BackendSystem = "system"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// DefaultPollInterval is how often the system backend samples the clipboard.
const DefaultPollInterval = 500 * time.Millisecond

// ErrNoBackend is returned by Open when auto selection finds nothing usable.
var ErrNoBackend = errors.New("clipboard: no usable backend")

// Backend is a clipboard implementation.
type Backend interface {
	// Name returns the backend name.
	Name() string

	// Read returns the current content, or nil if the clipboard is empty.
	Read() (*domain.Item, error)

	// Write replaces the clipboard content. Items the backend cannot hold
	// yield domain.ErrUnsupported.
	Write(item domain.Item) error

	// Watch returns a channel that receives a signal whenever the content
	// changes, including changes made through Write. Signals may be
	// coalesced. The channel is closed when ctx is done or the backend is
	// closed.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close releases resources and ends all watches.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	// Backend is auto, system, file or memory (default: auto).
	Backend string
	// FilePath is the file used by the file backend.
	FilePath string
	// PollInterval is the system backend sampling period (default: 500ms).
	PollInterval time.Duration
}

// Open constructs the backend named by opts.
//
// auto picks system when a display is present (DISPLAY or WAYLAND_DISPLAY on
// Linux and BSD, always on macOS and Windows) and a clipboard tool is
// installed, and falls back to file when FilePath is set.
func Open(opts Options, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	name, err := selectBackend(opts, os.Getenv, runtime.GOOS, systemAvailable())
	if err != nil {
		return nil, err
	}

	logger.Info("clipboard backend selected", "backend", name, "requested", opts.Backend)
	switch name {
	case BackendSystem:
		return NewSystem(opts.PollInterval, logger), nil
	case BackendFile:
		return NewFile(opts.FilePath, logger)
	default:
		return NewMemory(), nil
	}
}

func selectBackend(opts Options, getenv func(string) string, goos string, sysOK bool) (string, error) {
	switch opts.Backend {
	case BackendMemory:
		return BackendMemory, nil
	case BackendSystem:
		if !sysOK {
			return "", fmt.Errorf("%w: system clipboard unsupported (install xclip, xsel or wl-clipboard)", ErrNoBackend)
		}
		return BackendSystem, nil
	case BackendFile:
		if opts.FilePath == "" {
			return "", fmt.Errorf("%w: file backend needs a file path", ErrNoBackend)
		}
		return BackendFile, nil
	case "", BackendAuto:
		if sysOK && hasDisplay(getenv, goos) {
			return BackendSystem, nil
		}
		if opts.FilePath != "" {
			return BackendFile, nil
		}
		return "", fmt.Errorf("%w: no display or clipboard tool found and no file path set", ErrNoBackend)
	default:
		return "", fmt.Errorf("clipboard: unknown backend %q", opts.Backend)
	}
}

func hasDisplay(getenv func(string) string, goos string) bool {
	switch goos {
	case "darwin", "windows":
		return true
	default:
		return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
	}
}
