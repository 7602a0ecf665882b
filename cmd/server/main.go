// Command server runs the numeral HTTP service. APP_PROFILE selects the
// configuration profile; SIGINT or SIGTERM drains in-flight requests and
// flushes telemetry before exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "github.com/jsamuelsen11/numeral-service/internal/adapters/http"
	"github.com/jsamuelsen11/numeral-service/internal/platform/config"
	"github.com/jsamuelsen11/numeral-service/internal/platform/logging"
	"github.com/jsamuelsen11/numeral-service/internal/platform/telemetry"
)

const (
	drainTimeout = 15 * time.Second
	flushTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "numeral-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE is not set (one of local, dev, qa, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading %s config: %w", profile, err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otel, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer flush(otel, logger)

	server, err := newContainer(cfg, logger, otel.Metrics).server()
	if err != nil {
		return err
	}
	if err := server.Listen(); err != nil {
		return err
	}

	served := make(chan error, 1)
	go func() { served <- server.Start() }()

	select {
	case err := <-served:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down", slog.String("cause", context.Cause(ctx).Error()))
	}

	return drain(server, served, logger)
}

// drain stops accepting connections and waits for Start to return.
func drain(server *adapthttp.Server, served <-chan error, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		logger.Error("draining requests", slog.Any("error", err))
	}
	<-served
	logger.Info("shutdown complete")
	return err
}

func flush(p *telemetry.Providers, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := p.Shutdown(ctx); err != nil {
		logger.Error("flushing telemetry", slog.Any("error", err))
	}
}
