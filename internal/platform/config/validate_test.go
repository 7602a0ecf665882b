package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080, ReadTimeout: time.Second, WriteTimeout: time.Second, HealthCheckTimeout: time.Second},
		Log:    LogConfig{Level: "info", Format: "json"},
		Converter: ConverterConfig{
			BatchMaxItems: 100,
			BatchWorkers:  8,
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:8080",
			Timeout: time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     2 * time.Second,
				Multiplier:      2,
			},
			CircuitBreaker: CircuitBreakerConfig{MaxFailures: 5, Timeout: time.Second, HalfOpenLimit: 1},
		},
		Telemetry: TelemetryConfig{Exporter: "stdout", ServiceName: "numeral-service"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"no read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "server.read_timeout"},
		{"no write timeout", func(c *Config) { c.Server.WriteTimeout = -time.Second }, "server.write_timeout"},
		{"no health check timeout", func(c *Config) { c.Server.HealthCheckTimeout = 0 }, "server.health_check_timeout"},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"empty batch", func(c *Config) { c.Converter.BatchMaxItems = 0 }, "converter.batch_max_items"},
		{"no workers", func(c *Config) { c.Converter.BatchWorkers = 0 }, "converter.batch_workers"},
		{"too many workers", func(c *Config) { c.Converter.BatchWorkers = maxBatchWorkers + 1 }, "converter.batch_workers"},
		{"no base url", func(c *Config) { c.Client.BaseURL = "" }, "client.base_url"},
		{"no client timeout", func(c *Config) { c.Client.Timeout = 0 }, "client.timeout"},
		{"no attempts", func(c *Config) { c.Client.Retry.MaxAttempts = 0 }, "client.retry.max_attempts"},
		{"zero multiplier", func(c *Config) { c.Client.Retry.Multiplier = 0 }, "client.retry.multiplier"},
		{"inverted backoff", func(c *Config) { c.Client.Retry.InitialInterval = time.Minute }, "client.retry.initial_interval"},
		{"breaker never trips", func(c *Config) { c.Client.CircuitBreaker.MaxFailures = 0 }, "client.circuit_breaker.max_failures"},
		{"negative rate", func(c *Config) { c.Client.RateLimit.RequestsPerSecond = -1 }, "requests_per_second"},
		{"rate without burst", func(c *Config) { c.Client.RateLimit.RequestsPerSecond = 10 }, "burst_size"},
		{"rate with burst", func(c *Config) { c.Client.RateLimit = RateLimitConfig{RequestsPerSecond: 10, BurstSize: 2} }, ""},
		{"disabled telemetry is not checked", func(c *Config) { c.Telemetry = TelemetryConfig{Exporter: "zipkin"} }, ""},
		{"unknown exporter", func(c *Config) { c.Telemetry.Enabled, c.Telemetry.Exporter = true, "zipkin" }, "telemetry.exporter"},
		{"no service name", func(c *Config) { c.Telemetry.Enabled, c.Telemetry.ServiceName = true, "" }, "telemetry.service_name"},
		{"otlp without endpoint", func(c *Config) { c.Telemetry.Enabled, c.Telemetry.Exporter = true, "otlp" }, "telemetry.endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want an error mentioning %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Log.Level = "loud"
	cfg.Client.BaseURL = ""

	err := cfg.Validate()
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("Validate() = %T, want a joined error", err)
	}
	if n := len(joined.Unwrap()); n != 3 {
		t.Errorf("Validate() reported %d problems, want 3: %v", n, err)
	}
}
