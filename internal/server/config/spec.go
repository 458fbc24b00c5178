package config

import "time"

// Config is the root configuration for clipmesh.
type Config struct {
	// ListenPort is the TCP port peers connect to. Required.
	ListenPort int `koanf:"listen_port"`

	// SecretKey is the shared 32-byte key, hex encoded. All peers must use
	// the same key.
	SecretKey string `koanf:"secret_key"`

	// MaxFileSize caps each file in an outbound file batch, in bytes.
	MaxFileSize uint64 `koanf:"max_file_size"`

	// InstanceID identifies this process on the wire.
	// If empty, the hostname is used.
	InstanceID string `koanf:"instance_id"`

	// DownloadDir receives files sent by peers.
	DownloadDir string `koanf:"download_dir"`

	// Cipher is chacha20-poly1305 or aes-256-gcm.
	Cipher string `koanf:"cipher"`

	Peers     []PeerConfig     `koanf:"peers"`
	Clipboard ClipboardSection `koanf:"clipboard"`
	Sync      SyncSection      `koanf:"sync"`
	Metrics   MetricsSection   `koanf:"metrics"`
	Log       LogSection       `koanf:"log"`
}

// PeerConfig is one remote instance.
type PeerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// ClipboardSection selects the clipboard backend.
type ClipboardSection struct {
	// Backend is auto, system, file or memory.
	Backend string `koanf:"backend"`
	// FilePath is the clipboard file for the file backend.
	FilePath string `koanf:"file_path"`
	// PollInterval is how often the system backend samples the clipboard.
	PollInterval time.Duration `koanf:"poll_interval"`
}

// SyncSection tunes synchronization and transport.
type SyncSection struct {
	SuppressWindow   time.Duration `koanf:"suppress_window"`
	SendTimeout      time.Duration `koanf:"send_timeout"`
	ReadTimeout      time.Duration `koanf:"read_timeout"`
	MaxFrameSize     uint32        `koanf:"max_frame_size"`
	InboundRateLimit int           `koanf:"inbound_rate_limit"`

	// OnError is stop or continue. It decides whether a clipboard or file
	// I/O failure ends synchronization.
	OnError string `koanf:"on_error"`
}

// MetricsSection configures the status endpoint.
type MetricsSection struct {
	// Addr is the HTTP listen address. Empty disables the endpoint.
	Addr string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
