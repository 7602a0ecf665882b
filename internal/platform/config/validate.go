package config

import (
	"errors"
	"fmt"
	"slices"
)

// maxBatchWorkers bounds the goroutines a single batch request may use.
const maxBatchWorkers = 256

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
	exporters  = []string{"stdout", "otlp"}
)

// problems collects every failed check so Validate can report them together.
type problems []error

func (p *problems) require(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

// Validate reports every invalid setting at once, joined with errors.Join.
func (c *Config) Validate() error {
	var p problems

	s := c.Server
	p.require(s.Port >= 1 && s.Port <= 65535, "server.port must be between 1 and 65535, got %d", s.Port)
	p.require(s.ReadTimeout > 0, "server.read_timeout must be positive, got %s", s.ReadTimeout)
	p.require(s.WriteTimeout > 0, "server.write_timeout must be positive, got %s", s.WriteTimeout)
	p.require(s.HealthCheckTimeout > 0, "server.health_check_timeout must be positive, got %s", s.HealthCheckTimeout)

	p.require(slices.Contains(logLevels, c.Log.Level), "log.level must be one of %v, got %q", logLevels, c.Log.Level)
	p.require(slices.Contains(logFormats, c.Log.Format), "log.format must be one of %v, got %q", logFormats, c.Log.Format)

	cv := c.Converter
	p.require(cv.BatchMaxItems >= 1, "converter.batch_max_items must be at least 1, got %d", cv.BatchMaxItems)
	p.require(cv.BatchWorkers >= 1 && cv.BatchWorkers <= maxBatchWorkers,
		"converter.batch_workers must be between 1 and %d, got %d", maxBatchWorkers, cv.BatchWorkers)

	c.Client.check(&p)

	if t := c.Telemetry; t.Enabled {
		p.require(slices.Contains(exporters, t.Exporter), "telemetry.exporter must be one of %v, got %q", exporters, t.Exporter)
		p.require(t.ServiceName != "", "telemetry.service_name is required when telemetry is enabled")
		p.require(t.Exporter != "otlp" || t.Endpoint != "", "telemetry.endpoint is required for the otlp exporter")
	}

	return errors.Join(p...)
}

func (cl *ClientConfig) check(p *problems) {
	p.require(cl.BaseURL != "", "client.base_url is required")
	p.require(cl.Timeout > 0, "client.timeout must be positive, got %s", cl.Timeout)

	r := cl.Retry
	p.require(r.MaxAttempts >= 1, "client.retry.max_attempts must be at least 1, got %d", r.MaxAttempts)
	p.require(r.Multiplier > 0, "client.retry.multiplier must be positive, got %g", r.Multiplier)
	p.require(r.InitialInterval <= r.MaxInterval || r.MaxInterval == 0,
		"client.retry.initial_interval %s exceeds max_interval %s", r.InitialInterval, r.MaxInterval)

	p.require(cl.CircuitBreaker.MaxFailures >= 1,
		"client.circuit_breaker.max_failures must be at least 1, got %d", cl.CircuitBreaker.MaxFailures)

	rl := cl.RateLimit
	p.require(rl.RequestsPerSecond >= 0,
		"client.rate_limit.requests_per_second must not be negative, got %g", rl.RequestsPerSecond)
	p.require(rl.RequestsPerSecond == 0 || rl.BurstSize >= 1,
		"client.rate_limit.burst_size must be at least 1 when rate limiting is on, got %d", rl.BurstSize)
}
