package command

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/clipmesh-go/internal/infra/buildinfo"
	"github.com/yndnr/clipmesh-go/internal/infra/confloader"
	"github.com/yndnr/clipmesh-go/internal/server/config"
	"github.com/yndnr/clipmesh-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "clipmesh",
		Usage:   "Encrypted clipboard sync across machines on a LAN",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RunCommand(),
			CheckCommand(),
			InitCommand(),
			KeygenCommand(),
		},
		Action: runAction,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file (default: " + config.DefaultPath() + ")",
			EnvVars: []string{"CLIPMESH_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.IntFlag{
			Name:  "listen-port",
			Usage: "TCP port to accept peers on",
		},
	}
}

// configPath returns the file to load. An explicit path must exist; the
// default path is used only when present.
func configPath(c *cli.Context) (string, error) {
	if p := c.String("config"); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return p, nil
	}
	p := config.DefaultPath()
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("config file: %w", err)
	}
	return p, nil
}

// flagOverrides maps explicitly set flags to config keys.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := make(map[string]any)
	if c.IsSet("log-level") {
		overrides["log.level"] = c.String("log-level")
	}
	if c.IsSet("log-format") {
		overrides["log.format"] = c.String("log-format")
	}
	if c.IsSet("listen-port") {
		overrides["listen_port"] = c.Int("listen-port")
	}
	return overrides
}

// loadConfig loads defaults, file, environment and flags, then verifies.
// The returned path is empty when no file was read.
func loadConfig(c *cli.Context) (*config.Config, string, error) {
	path, err := configPath(c)
	if err != nil {
		return nil, "", err
	}

	cfg := config.Default()
	opts := []confloader.Option{}
	if path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	loader := confloader.NewLoader(opts...)

	if err := loader.Load(cfg); err != nil {
		return nil, path, err
	}
	if overrides := flagOverrides(c); len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, path, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, path, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if err := config.Verify(cfg); err != nil {
		return nil, path, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, path, nil
}

// initLogger builds the process logger and installs it as slog's default.
func initLogger(cfg *config.Config) (*slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(log)
	return log, nil
}
