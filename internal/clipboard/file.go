package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/yndnr/clipmesh-go/internal/core/domain"
)

// File uses a text file as the clipboard. Writes replace the file atomically;
// changes made by any process are picked up through fsnotify.
type File struct {
	path   string
	logger *slog.Logger

	mu       sync.Mutex
	watchers []*fsnotify.Watcher
}

// NewFile returns a file clipboard at path. The parent directory is created
// if missing; the file itself need not exist.
func NewFile(path string, logger *slog.Logger) (*File, error) {
	if path == "" {
		return nil, errors.New("clipboard: file path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("clipboard: resolve %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("clipboard: create dir for %s: %w", abs, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &File{path: abs, logger: logger}, nil
}

// Name implements Backend.
func (f *File) Name() string { return BackendFile }

// Path returns the absolute path of the clipboard file.
func (f *File) Path() string { return f.path }

// Read implements Backend. A missing file is an empty clipboard.
func (f *File) Read() (*domain.Item, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return itemFromText(string(data)), nil
}

// Write implements Backend.
func (f *File) Write(item domain.Item) error {
	text, err := textFromItem(item)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Watch implements Backend. It watches the parent directory so replacements
// by rename are seen.
func (f *File) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("clipboard: create watcher: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("clipboard: watch %s: %w", dir, err)
	}

	f.mu.Lock()
	f.watchers = append(f.watchers, w)
	f.mu.Unlock()

	f.logger.Info("clipboard file watcher started", "path", f.path)

	ch := make(chan struct{}, 1)
	stop := context.AfterFunc(ctx, func() { _ = w.Close() })
	go func() {
		defer close(ch)
		defer stop()
		base := filepath.Base(f.path)

		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
					continue
				}
				f.logger.Debug("clipboard file changed", "op", event.Op.String())
				select {
				case ch <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				f.logger.Warn("clipboard file watcher error", "error", err)
			}
		}
	}()
	return ch, nil
}

// Close implements Backend.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var errs []error
	for _, w := range f.watchers {
		errs = append(errs, w.Close())
	}
	f.watchers = nil
	return errors.Join(errs...)
}
