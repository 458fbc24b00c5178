package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yndnr/clipmesh-go/internal/clipboard"
	"github.com/yndnr/clipmesh-go/internal/protocol"
	"github.com/yndnr/clipmesh-go/internal/telemetry/logger"
	"github.com/yndnr/clipmesh-go/internal/transport"
	"github.com/yndnr/clipmesh-go/pkg/crypto/aead"
)

// Verify validates the configuration. All problems are reported together.
func Verify(cfg *Config) error {
	var errs []error
	errs = append(errs, verifyCore(cfg)...)
	errs = append(errs, verifyPeers(cfg.Peers)...)
	errs = append(errs, verifyClipboard(&cfg.Clipboard)...)
	errs = append(errs, verifySync(&cfg.Sync)...)
	errs = append(errs, verifyLog(&cfg.Log)...)
	return errors.Join(errs...)
}

func verifyCore(cfg *Config) []error {
	var errs []error
	if cfg.ListenPort < 1 || cfg.ListenPort > 65535 {
		errs = append(errs, fmt.Errorf("listen_port must be between 1 and 65535, got %d", cfg.ListenPort))
	}
	if cfg.SecretKey == "" {
		errs = append(errs, errors.New("secret_key is required (generate one with: clipmesh keygen)"))
	} else if _, err := aead.ParseKey(cfg.SecretKey); err != nil {
		errs = append(errs, fmt.Errorf("secret_key: %w", err))
	}
	if _, err := aead.ParseType(cfg.Cipher); err != nil {
		errs = append(errs, fmt.Errorf("cipher: %w", err))
	}
	if cfg.MaxFileSize == 0 {
		errs = append(errs, errors.New("max_file_size must be positive"))
	}
	if cfg.DownloadDir == "" {
		errs = append(errs, errors.New("download_dir is required"))
	}
	if len(cfg.InstanceID) > protocol.MaxInstanceIDLen {
		errs = append(errs, fmt.Errorf("instance_id is %d bytes, max %d", len(cfg.InstanceID), protocol.MaxInstanceIDLen))
	}
	if !utf8.ValidString(cfg.InstanceID) {
		errs = append(errs, errors.New("instance_id is not valid UTF-8"))
	}
	return errs
}

func verifyPeers(peers []PeerConfig) []error {
	var errs []error
	for i, p := range peers {
		if p.Host == "" {
			errs = append(errs, fmt.Errorf("peers[%d].host is required", i))
		}
		if p.Port < 1 || p.Port > 65535 {
			errs = append(errs, fmt.Errorf("peers[%d].port must be between 1 and 65535, got %d", i, p.Port))
		}
	}
	return errs
}

func verifyClipboard(cfg *ClipboardSection) []error {
	var errs []error
	switch cfg.Backend {
	case "", clipboard.BackendAuto, clipboard.BackendSystem, clipboard.BackendMemory:
	case clipboard.BackendFile:
		if cfg.FilePath == "" {
			errs = append(errs, errors.New("clipboard.file_path is required for the file backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("clipboard.backend %q is not one of auto, system, file, memory", cfg.Backend))
	}
	if cfg.PollInterval <= 0 {
		errs = append(errs, errors.New("clipboard.poll_interval must be positive"))
	}
	return errs
}

func verifySync(cfg *SyncSection) []error {
	var errs []error
	positive := []struct {
		name  string
		value int64
	}{
		{"sync.suppress_window", int64(cfg.SuppressWindow)},
		{"sync.send_timeout", int64(cfg.SendTimeout)},
		{"sync.read_timeout", int64(cfg.ReadTimeout)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", p.name))
		}
	}
	if cfg.MaxFrameSize == 0 || cfg.MaxFrameSize > transport.MaxFrameBody {
		errs = append(errs, fmt.Errorf("sync.max_frame_size must be between 1 and %d", transport.MaxFrameBody))
	}
	if cfg.InboundRateLimit < 0 {
		errs = append(errs, errors.New("sync.inbound_rate_limit must not be negative"))
	}
	switch cfg.OnError {
	case OnErrorStop, OnErrorContinue:
	default:
		errs = append(errs, fmt.Errorf("sync.on_error %q is not one of stop, continue", cfg.OnError))
	}
	return errs
}

func verifyLog(cfg *LogSection) []error {
	var errs []error
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch cfg.Format {
	case "", "text", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", cfg.Format))
	}
	return errs
}
