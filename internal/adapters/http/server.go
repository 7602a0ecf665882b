package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen11/numeral-service/internal/platform/config"
)

// shutdownGrace bounds Shutdown when the caller's context has no deadline.
const shutdownGrace = 10 * time.Second

// Server serves the numeral API. Listen and Start are separate so callers
// can learn the bound port (for port 0) before serving.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
	listen func() (net.Listener, error)
	bound  atomic.Pointer[string]
}

// NewServer builds a Server for cfg. A nil logger discards logs.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		srv: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
	s.listen = sync.OnceValues(func() (net.Listener, error) {
		ln, err := net.Listen("tcp", s.srv.Addr)
		if err != nil {
			return nil, fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
		}
		addr := ln.Addr().String()
		s.bound.Store(&addr)
		return ln, nil
	})
	return s
}

// Listen binds the configured address. Later calls return the first result.
func (s *Server) Listen() error {
	_, err := s.listen()
	return err
}

// Start serves until Shutdown, listening first if needed. A graceful
// shutdown returns nil.
func (s *Server) Start() error {
	ln, err := s.listen()
	if err != nil {
		return err
	}

	s.logger.Info("serving numeral API", slog.String("addr", ln.Addr().String()))
	if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving HTTP: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
// Without a deadline on ctx it waits at most shutdownGrace.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, shutdownGrace)
		defer cancel()
	}
	s.logger.Info("shutting down HTTP server")
	return s.srv.Shutdown(ctx)
}

// Addr is the bound address after Listen, the configured one before.
func (s *Server) Addr() string {
	if addr := s.bound.Load(); addr != nil {
		return *addr
	}
	return s.srv.Addr
}
