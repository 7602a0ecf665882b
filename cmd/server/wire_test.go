package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/numeral-service/internal/platform/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
		},
		Log:       config.LogConfig{Level: "error", Format: "text"},
		Converter: config.ConverterConfig{BatchMaxItems: 10, BatchWorkers: 2},
	}
}

func TestContainer_ResolvesServer(t *testing.T) {
	t.Parallel()

	c := newContainer(testConfig(), slog.New(slog.DiscardHandler), nil)
	if _, err := c.server(); err != nil {
		t.Fatalf("server() error = %v", err)
	}
}

func TestContainer_RouterServesConversionsAndReadiness(t *testing.T) {
	t.Parallel()

	c := newContainer(testConfig(), slog.New(slog.DiscardHandler), nil)
	router := do.MustInvoke[http.Handler](c.injector)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/numerals/1994", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/numerals/1994 status = %d, body %s", rec.Code, rec.Body)
	}
	var got struct {
		Numeral string `json:"numeral"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil || got.Numeral != "MCMXCIV" {
		t.Errorf("numeral = %q (decode error %v), want MCMXCIV", got.Numeral, err)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", http.NoBody))
	var ready struct {
		Checks map[string]string `json:"checks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&ready); err != nil {
		t.Fatalf("decoding readiness: %v", err)
	}
	if _, ok := ready.Checks["converter"]; !ok || rec.Code != http.StatusOK {
		t.Errorf("readiness = %d %v, want 200 with a converter check", rec.Code, ready.Checks)
	}
}
