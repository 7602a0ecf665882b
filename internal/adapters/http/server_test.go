package http_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	adapthttp "github.com/jsamuelsen11/numeral-service/internal/adapters/http"
	"github.com/jsamuelsen11/numeral-service/internal/platform/config"
)

func loopback(port int) config.ServerConfig {
	return config.ServerConfig{
		Host:         "127.0.0.1",
		Port:         port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}

// startServer listens, serves in the background and returns a stop func
// that shuts down and reports Start's result.
func startServer(t *testing.T, ctx context.Context, s *adapthttp.Server) func() error {
	t.Helper()
	if err := s.Listen(); err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	served := make(chan error, 1)
	go func() { served <- s.Start() }()

	return func() error {
		if err := s.Shutdown(ctx); err != nil {
			return err
		}
		return <-served
	}
}

func TestServer_AddrBeforeListen(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(loopback(9090), http.NotFoundHandler(), nil)
	if got := s.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:9090")
	}
}

func TestServer_ServesOnResolvedPort(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(loopback(0), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "MCMXCIV")
	}), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stop := startServer(t, ctx, s)

	addr := s.Addr()
	if addr == "127.0.0.1:0" || !strings.HasPrefix(addr, "127.0.0.1:") {
		t.Fatalf("Addr() = %q, want a resolved loopback port", addr)
	}
	if err := s.Listen(); err != nil || s.Addr() != addr {
		t.Errorf("second Listen() = %v with Addr %q, want nil and %q", err, s.Addr(), addr)
	}

	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "MCMXCIV" {
		t.Errorf("body = %q, want %q", body, "MCMXCIV")
	}

	if err := stop(); err != nil {
		t.Errorf("stop: %v", err)
	}
}

func TestServer_ShutdownWithoutDeadline(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(loopback(0), http.NotFoundHandler(), nil)
	if err := startServer(t, context.Background(), s)(); err != nil {
		t.Errorf("stop: %v", err)
	}
}

func TestServer_StartWithoutListen(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(loopback(0), http.NotFoundHandler(), nil)
	served := make(chan error, 1)
	go func() { served <- s.Start() }()

	deadline := time.Now().Add(2 * time.Second)
	for s.Addr() == "127.0.0.1:0" && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := <-served; err != nil {
		t.Errorf("Start() error = %v, want nil", err)
	}
}

func TestServer_ListenInvalidHost(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(config.ServerConfig{Host: "256.0.0.1"}, http.NotFoundHandler(), nil)
	if err := s.Listen(); err == nil {
		t.Fatal("Listen() error = nil, want error")
	}
	if err := s.Start(); err == nil {
		t.Fatal("Start() error = nil, want the listen error")
	}
}
