package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sobirin-dev/hendshake/internal/config"
	"github.com/sobirin-dev/hendshake/internal/entrystore"
	"github.com/sobirin-dev/hendshake/internal/httpserver"
	"github.com/sobirin-dev/hendshake/internal/httpserver/deps"
	"github.com/sobirin-dev/hendshake/internal/httpserver/mw"
	"github.com/sobirin-dev/hendshake/internal/logger"
	"github.com/sobirin-dev/hendshake/internal/metrics"
	"github.com/sobirin-dev/hendshake/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	store        *entrystore.Store
	backend      *Backend
	stopTracking func()
}

// New wires the store, its snapshot backend and the HTTP server.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	loggerClient.Info("starting with config",
		logger.String("backend", cfg.Backend),
		logger.String("listen", cfg.ListenPort),
		logger.Bool("metrics", cfg.MetricsEnabled))

	loggerClient.Debugf("effective config: %+v", cfg.Redacted())

	store, backend, err := OpenStore(ctx, cfg, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot backend: %w", err)
	}

	stopTracking := func() {}
	if cfg.MetricsEnabled {
		stopTracking = metrics.Track(store)
	}

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		Store:        store,
		Backend:      backend.Name,
		Snapshot:     backend.Pinger,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		RateLimit: mw.RateLimitConfig{
			Burst:             cfg.RateLimitBurst,
			RefillPerIPPerMin: cfg.RateLimitPerMin,
			MaxEntries:        10_000,
			TrustProxy:        cfg.TrustProxy,
		},
		MetricsEnabled: cfg.MetricsEnabled,
	}

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       httpserver.New(cfg, loggerClient, d),
		store:        store,
		backend:      backend,
		stopTracking: stopTracking,
	}, nil
}

// Run serves until SIGINT/SIGTERM or a server error, then flushes the
// store and closes the backend.
func (a *App) Run() error {
	a.logger.Infof("Starting hendshake %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	a.shutdown(shutdownCtx)

	if runErr == nil {
		a.logger.Info("hendshake stopped cleanly")
	}
	return runErr
}

// shutdown flushes the final snapshot before the backend goes away.
func (a *App) shutdown(ctx context.Context) {
	if err := a.store.Close(ctx); err != nil {
		a.logger.Warn("final snapshot write failed", logger.Error(err))
	}
	a.stopTracking()
	a.backend.Close(a.logger)
}
