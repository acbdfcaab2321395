// Command hxtree-demo serves the demo page on Echo.
//
// Settings come from the environment (or a .env file): PORT, APP_ENV,
// HXTREE_KEY, LOG_LEVEL, SESSION_TTL, SESSION_CACHE_SIZE and REDIS_ADDR,
// REDIS_PASSWORD, REDIS_DB. With REDIS_ADDR set, trees are sealed and kept
// in Redis; otherwise they live in process memory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pthm/hxtree"
	hxtreeecho "github.com/pthm/hxtree/adapters/echo"
	"github.com/pthm/hxtree/internal/config"
	"github.com/pthm/hxtree/internal/demo"
	"github.com/pthm/hxtree/lib/encoding"
	"github.com/pthm/hxtree/lib/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsLocal() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	kinds := hxtree.NewKinds()
	demo.Register(kinds)

	opts := []hxtree.AppOption{
		hxtree.WithKinds(kinds),
		hxtree.WithStore(store),
		hxtree.WithLogger(logger),
		hxtree.WithMetrics(reg),
		hxtree.WithCookie(hxtree.DefaultCookieName, "/", !cfg.IsLocal()),
	}
	if cfg.Key != nil {
		opts = append(opts, hxtree.WithKey(cfg.Key))
	} else {
		logger.Warn("HXTREE_KEY not set, sessions will not survive a restart")
	}
	app := hxtree.NewApp(demo.Build, opts...)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	hxtreeecho.Mount(e, app)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Port, "env", cfg.Env)
		if err := e.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newStore returns a Redis store sealed with the app key when Redis is
// configured, and an in-memory store otherwise.
func newStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	if !cfg.Redis.Enabled() {
		return session.NewMemory(cfg.Session.CacheSize, cfg.Session.TTL), nil
	}
	if cfg.Key == nil {
		return nil, errors.New("REDIS_ADDR requires HXTREE_KEY")
	}

	rdb := session.DialRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, session.WithTTL(cfg.Session.TTL))
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
	}

	enc, err := encoding.NewEncoder(cfg.Key)
	if err != nil {
		return nil, err
	}
	return session.NewSealed(rdb, enc), nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, "request", slog.Group("http", attrs...), slog.String("error", v.Error.Error()))
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelDebug, "request", slog.Group("http", attrs...))
			return nil
		},
	})
}
