package config

// defaults is the bottom configuration layer. It names every key, which lets
// APP_* variables override settings no YAML file mentions.
func defaults() map[string]any {
	return map[string]any{
		"server": map[string]any{
			"host":          "0.0.0.0",
			"port":          8080,
			"read_timeout":  "5s",
			"write_timeout": "10s",
			"idle_timeout":  "120s",

			"health_check_timeout": "2s",
		},
		"log": map[string]any{
			"level":  "info",
			"format": "json",
		},
		"converter": map[string]any{
			"batch_max_items": 100,
			"batch_workers":   8,
		},
		"client": map[string]any{
			"base_url": "http://localhost:8080",
			"timeout":  "10s",
			"retry": map[string]any{
				"max_attempts":     3,
				"initial_interval": "100ms",
				"max_interval":     "2s",
				"multiplier":       2.0,
			},
			"circuit_breaker": map[string]any{
				"max_failures":    5,
				"timeout":         "30s",
				"half_open_limit": 1,
			},
			"rate_limit": map[string]any{
				"requests_per_second": 0,
				"burst_size":          0,
			},
		},
		"telemetry": map[string]any{
			"enabled":      false,
			"exporter":     "stdout",
			"endpoint":     "",
			"service_name": "numeral-service",
		},
	}
}
