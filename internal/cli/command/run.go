package command

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strconv"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yndnr/clipmesh-go/internal/clipboard"
	"github.com/yndnr/clipmesh-go/internal/core/coordinator"
	"github.com/yndnr/clipmesh-go/internal/infra/buildinfo"
	"github.com/yndnr/clipmesh-go/internal/infra/shutdown"
	"github.com/yndnr/clipmesh-go/internal/protocol"
	"github.com/yndnr/clipmesh-go/internal/server/config"
	"github.com/yndnr/clipmesh-go/internal/server/httpserver"
	"github.com/yndnr/clipmesh-go/internal/telemetry/metric"
	"github.com/yndnr/clipmesh-go/internal/transport"
	"github.com/yndnr/clipmesh-go/pkg/crypto/aead"
)

// inboundBuffer is how many decoded messages may wait for the coordinator.
const inboundBuffer = 16

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Start clipboard synchronization (default)",
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	cfg, path, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, err := initLogger(cfg)
	if err != nil {
		return err
	}
	log.Info("starting clipmesh", "version", buildinfo.Version, "commit", buildinfo.Get().Commit, "config", path)
	log.Debug("effective configuration", "config", config.Sanitize(cfg))

	return runSync(c.Context, cfg, log, metric.Global())
}

// runSync wires every component and blocks until a shutdown signal, ctx
// cancellation or a fatal coordinator error.
func runSync(ctx context.Context, cfg *config.Config, log *slog.Logger, metrics *metric.Registry) error {
	instanceID, err := cfg.ResolveInstanceID()
	if err != nil {
		return err
	}
	log = log.With("instance_id", instanceID)

	sealer, err := newSealer(cfg)
	if err != nil {
		return err
	}

	cb, err := clipboard.Open(clipboard.Options{
		Backend:      cfg.Clipboard.Backend,
		FilePath:     cfg.Clipboard.FilePath,
		PollInterval: cfg.Clipboard.PollInterval,
	}, log.With("component", "clipboard"))
	if err != nil {
		return err
	}

	inbound := make(chan *protocol.Message, inboundBuffer)
	listener := transport.NewListener(transport.ListenerConfig{
		Addr:         net.JoinHostPort("", strconv.Itoa(cfg.ListenPort)),
		ReadTimeout:  cfg.Sync.ReadTimeout,
		MaxFrameBody: cfg.Sync.MaxFrameSize,
		RateLimit:    cfg.Sync.InboundRateLimit,
	}, sealer, inbound, log.With("component", "listener"), metrics)
	if err := listener.Listen(); err != nil {
		return errors.Join(err, cb.Close())
	}

	caster := transport.NewBroadcaster(peers(cfg.Peers), sealer, cfg.Sync.SendTimeout,
		log.With("component", "broadcaster"), metrics)

	watchCtx, stopWatch := context.WithCancel(ctx)
	changes, err := cb.Watch(watchCtx)
	if err != nil {
		stopWatch()
		return errors.Join(err, listener.Shutdown(ctx), cb.Close())
	}

	coord, err := coordinator.New(coordinator.Config{
		InstanceID:      instanceID,
		MaxFileSize:     cfg.MaxFileSize,
		DownloadDir:     cfg.DownloadDir,
		SuppressWindow:  cfg.Sync.SuppressWindow,
		ContinueOnError: cfg.Sync.OnError == config.OnErrorContinue,
	}, cb, caster, changes, inbound,
		coordinator.WithLogger(log.With("component", "coordinator")),
		coordinator.WithMetrics(metrics))
	if err != nil {
		stopWatch()
		return errors.Join(err, listener.Shutdown(ctx), cb.Close())
	}

	var status *httpserver.Server
	if cfg.Metrics.Addr != "" {
		status = httpserver.New(cfg.Metrics.Addr, httpserver.NewRouter(httpserver.RouterConfig{
			InstanceID: instanceID,
			Peers:      len(cfg.Peers),
			Ready:      listener.Serving,
			Metrics:    metrics.Handler(),
			Logger:     log,
		}), log.With("component", "status"))
		if err := status.Listen(); err != nil {
			stopWatch()
			return errors.Join(err, listener.Shutdown(ctx), cb.Close())
		}
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return listener.Serve(gctx) })
	g.Go(func() error { return coord.Run(gctx) })
	if status != nil {
		g.Go(status.Serve)
	}

	// Hooks run newest first: status, listener, coordinator, watcher.
	sh := shutdown.NewHandler(shutdown.DefaultTimeout, log)
	sh.OnShutdown("clipboard", func(context.Context) error {
		stopWatch()
		return cb.Close()
	})
	sh.OnShutdown("coordinator", func(context.Context) error {
		cancelRun()
		return nil
	})
	sh.OnShutdown("listener", listener.Shutdown)
	if status != nil {
		sh.OnShutdown("status server", status.Shutdown)
	}

	log.Info("clipboard sync running",
		"listen_port", cfg.ListenPort,
		"peers", len(cfg.Peers),
		"backend", cb.Name(),
		"cipher", cfg.Cipher)

	// Wait also returns when gctx ends: parent cancellation or a group
	// member failing.
	shutdownErr := sh.Wait(gctx)
	runErr := g.Wait()
	if runErr != nil {
		log.Error("clipboard sync stopped", "error", runErr)
	} else {
		log.Info("clipboard sync stopped")
	}
	return errors.Join(runErr, shutdownErr)
}

func newSealer(cfg *config.Config) (*transport.Sealer, error) {
	key, err := cfg.SecretKeyBytes()
	if err != nil {
		return nil, err
	}
	ct, err := cfg.CipherType()
	if err != nil {
		return nil, err
	}
	cipher, err := aead.NewWithType(key, ct)
	if err != nil {
		return nil, err
	}
	return transport.NewSealer(cipher), nil
}

func peers(list []config.PeerConfig) []transport.Peer {
	out := make([]transport.Peer, len(list))
	for i, p := range list {
		out[i] = transport.Peer{Host: p.Host, Port: uint16(p.Port)}
	}
	return out
}
