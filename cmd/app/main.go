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

	"restaurant/cmd"
	api "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/knowledgebase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err = run(cfg, logger); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource it opens; returning an error unwinds the deferred
// closers before main exits.
func run(cfg cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	assistant, err := knowledgebase.Load(cfg.KnowledgeBasePath)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	uowFactory, closeDB, err := cmd.OpenStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	locker, closeLocker, err := cmd.OpenLocker(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	app, err := cmd.NewCompositionRoot(cfg, logger, uowFactory, locker, assistant)
	if err != nil {
		return err
	}

	jobManager := app.JobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}
	defer jobManager.StopAll()

	e := newWebServer(cfg, app)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Error(err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newLogger(cfg cmd.Config) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func newWebServer(cfg cmd.Config, app cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	if cfg.IsProduction() {
		e.Logger.SetLevel(log.WARN)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.InfoContext(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	api.NewServer(app.HTTPHandlers()).Register(e)
	return e
}
