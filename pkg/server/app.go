package server

import (
	"context"
	"os/signal"
	"syscall"

	"StockSense/internal/domain/repository"
	"StockSense/internal/usecase"
	"StockSense/pkg/config"
	xhttp "StockSense/pkg/http"
	applogger "StockSense/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	warmer     *usecase.Warmer
	store      repository.RecordStore
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	warmer *usecase.Warmer,
	store repository.RecordStore,
) *App {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		warmer:  warmer,
		store:   store,
	}
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the application and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.SlowThreshold),
		xhttp.WithLogger(a.logger),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	if a.warmer != nil && a.cfg.Warmup.Cron != "" {
		a.warmer.Start()
		go a.warmer.RunOnce(ctx)
	}

	a.logger.Info("stocksense started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("store", a.cfg.Store.Backend),
		applogger.Strings("trending", a.cfg.Watchlist.Trending),
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	if a.warmer != nil {
		a.warmer.Stop()
	}

	// the parent context is already cancelled
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("record store close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
