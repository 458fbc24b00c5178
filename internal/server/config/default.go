package config

import (
	"os"
	"path/filepath"

	"github.com/yndnr/clipmesh-go/internal/clipboard"
	"github.com/yndnr/clipmesh-go/internal/core/coordinator"
	"github.com/yndnr/clipmesh-go/internal/transport"
	"github.com/yndnr/clipmesh-go/pkg/crypto/aead"
)

// Default configuration values.
const (
	DefaultListenPort  = 5000
	DefaultMaxFileSize = 10 << 20

	DefaultBackend          = clipboard.BackendAuto
	DefaultPollInterval     = clipboard.DefaultPollInterval
	DefaultSuppressWindow   = coordinator.DefaultSuppressWindow
	DefaultSendTimeout      = transport.DefaultSendTimeout
	DefaultReadTimeout      = transport.DefaultReadTimeout
	DefaultMaxFrameSize     = transport.MaxFrameBody
	DefaultInboundRateLimit = 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Error policies for Sync.OnError.
const (
	OnErrorStop     = "stop"
	OnErrorContinue = "continue"
)

// Default returns the default configuration. SecretKey is left empty and
// must be supplied.
func Default() *Config {
	return &Config{
		ListenPort:  DefaultListenPort,
		MaxFileSize: DefaultMaxFileSize,
		DownloadDir: DefaultDownloadDir(),
		Cipher:      string(aead.DefaultCipher),
		Clipboard: ClipboardSection{
			Backend:      DefaultBackend,
			PollInterval: DefaultPollInterval,
		},
		Sync: SyncSection{
			SuppressWindow:   DefaultSuppressWindow,
			SendTimeout:      DefaultSendTimeout,
			ReadTimeout:      DefaultReadTimeout,
			MaxFrameSize:     DefaultMaxFrameSize,
			InboundRateLimit: DefaultInboundRateLimit,
			OnError:          OnErrorStop,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultPath returns the per-user config file location,
// e.g. ~/.config/clipmesh/config.yaml on Linux.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "clipmesh.yaml"
	}
	return filepath.Join(dir, "clipmesh", "config.yaml")
}

// DefaultDownloadDir returns ~/Downloads/clipmesh, or a temp directory when
// the home directory is unknown.
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "clipmesh")
	}
	return filepath.Join(home, "Downloads", "clipmesh")
}

// Template returns a starter configuration as a nested map, ready to be
// marshaled to a config file.
func Template(secretKey string) map[string]any {
	d := Default()
	return map[string]any{
		"listen_port":   d.ListenPort,
		"secret_key":    secretKey,
		"max_file_size": d.MaxFileSize,
		"instance_id":   "",
		"download_dir":  d.DownloadDir,
		"cipher":        d.Cipher,
		"peers": []any{
			map[string]any{"host": "192.168.1.20", "port": DefaultListenPort},
		},
		"clipboard": map[string]any{
			"backend":       d.Clipboard.Backend,
			"file_path":     "",
			"poll_interval": d.Clipboard.PollInterval.String(),
		},
		"sync": map[string]any{
			"suppress_window":    d.Sync.SuppressWindow.String(),
			"send_timeout":       d.Sync.SendTimeout.String(),
			"read_timeout":       d.Sync.ReadTimeout.String(),
			"max_frame_size":     d.Sync.MaxFrameSize,
			"inbound_rate_limit": d.Sync.InboundRateLimit,
			"on_error":           d.Sync.OnError,
		},
		"metrics": map[string]any{"addr": ""},
		"log": map[string]any{
			"level":  d.Log.Level,
			"format": d.Log.Format,
		},
	}
}
