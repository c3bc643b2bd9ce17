package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/marketnames/internal/adapters/http/api"
	"github.com/okian/marketnames/internal/adapters/http/swagger"
	"github.com/okian/marketnames/internal/adapters/profile"
	"github.com/okian/marketnames/internal/adapters/sportsapi"
	app "github.com/okian/marketnames/internal/app"
	"github.com/okian/marketnames/internal/config"
	"github.com/okian/marketnames/pkg/logger"
	"github.com/okian/marketnames/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "service failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, log logger.Logger) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	metrics.RegisterRuntimeCollectors()

	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := svc.Stop(stopCtx); err != nil {
			log.Error(stopCtx, "service shutdown failed", logger.Error(err))
		}
	}()

	apiServer := api.NewServer(svc, svc,
		api.WithDefaultLanguage(svc.DefaultLanguage()),
		api.WithLogger(log.Named("api")),
	)
	srv := newHTTPServer(cfg.Addr, newMux(apiServer))

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newService builds the naming service from configuration.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	langs, err := cfg.LanguageTags()
	if err != nil {
		return nil, err
	}
	return app.New(
		app.WithLogger(log),
		app.WithLanguages(langs...),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithProfileCacheSize(cfg.ProfileCacheSize),
		app.WithCataloguePath(cfg.CataloguePath),
		app.WithFetcher(newFetcher(cfg, log)),
	), nil
}

// newFetcher uses the sports API when a URL is configured and the demo
// profiles otherwise.
func newFetcher(cfg *config.Config, log logger.Logger) profile.Fetcher {
	if cfg.SportsAPIURL == "" {
		log.Warn(context.Background(), "no sports_api_url configured; serving demo profiles")
		return profile.DemoFetcher()
	}
	return sportsapi.NewClient(sportsapi.Config{
		BaseURL:    cfg.SportsAPIURL,
		APIKey:     cfg.SportsAPIKey,
		Timeout:    cfg.SportsAPITimeout(),
		MaxRetries: cfg.SportsAPIMaxRetries,
		Logger:     log.Named("sportsapi"),
	})
}

// newMux serves the naming API alongside its docs.
func newMux(apiServer *api.Server) *http.ServeMux {
	mux := http.NewServeMux()
	apiServer.Register(mux)
	swagger.Register(mux)
	return mux
}

func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
