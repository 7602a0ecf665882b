package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/numeral-service/internal/adapters/http"
	"github.com/jsamuelsen11/numeral-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/numeral-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/numeral-service/internal/app"
	"github.com/jsamuelsen11/numeral-service/internal/platform/config"
	"github.com/jsamuelsen11/numeral-service/internal/platform/health"
	"github.com/jsamuelsen11/numeral-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/numeral-service/internal/ports"
)

// container is the service's dependency graph.
type container struct {
	injector *do.RootScope
}

// newContainer registers every provider. Nothing is built until server is
// called.
func newContainer(cfg *config.Config, logger *slog.Logger, metrics *telemetry.Metrics) container {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.ProvideValue(i, logger)
	do.ProvideValue(i, metrics)

	do.Provide(i, func(i do.Injector) (*app.ConverterService, error) {
		return app.NewConverterService(cfg.Converter, do.MustInvoke[*telemetry.Metrics](i), logger), nil
	})
	do.Provide(i, func(i do.Injector) (ports.HealthRegistry, error) {
		registry := health.New(health.WithCheckTimeout(cfg.Server.HealthCheckTimeout))
		registry.Register(do.MustInvoke[*app.ConverterService](i))
		return registry, nil
	})
	do.Provide(i, func(i do.Injector) (*handlers.NumeralHandler, error) {
		return handlers.NewNumeralHandler(do.MustInvoke[*app.ConverterService](i)), nil
	})
	do.Provide(i, func(i do.Injector) (*handlers.HealthHandler, error) {
		return handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i)), nil
	})
	do.Provide(i, newRouter)
	do.Provide(i, func(i do.Injector) (*adapthttp.Server, error) {
		return adapthttp.NewServer(cfg.Server, do.MustInvoke[http.Handler](i), logger), nil
	})

	return container{injector: i}
}

// newRouter orders middleware outermost first: panics are caught around
// everything, and IDs exist before spans and access logs read them.
func newRouter(i do.Injector) (http.Handler, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*slog.Logger](i)

	return adapthttp.NewRouter(
		do.MustInvoke[*handlers.NumeralHandler](i),
		do.MustInvoke[*handlers.HealthHandler](i),
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.AppContext(),
		middleware.OpenTelemetry(do.MustInvoke[*telemetry.Metrics](i)),
		middleware.Logging(logger),
		middleware.Timeout(cfg.Server.WriteTimeout),
	), nil
}

// server resolves the HTTP server and, through it, the whole graph.
func (c container) server() (*adapthttp.Server, error) {
	s, err := do.Invoke[*adapthttp.Server](c.injector)
	if err != nil {
		return nil, fmt.Errorf("wiring server: %w", err)
	}
	return s, nil
}
