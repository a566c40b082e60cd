package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nagoyameshi/go-api-server/internal/config"
)

// Server owns the HTTP listener and the resources released once it stops.
type Server struct {
	cfg     *config.Config
	server  *http.Server
	closers []closer
}

type closer struct {
	name  string
	close func() error
}

// New creates a new server instance with the provided handler
func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		server: &http.Server{
			Addr:           fmt.Sprintf(":%d", cfg.App.Port),
			Handler:        handler,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.IdleTimeout,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
	}
}

// OnShutdown registers fn to run after the listener has drained. Closers run
// in reverse registration order.
func (s *Server) OnShutdown(name string, fn func() error) {
	s.closers = append(s.closers, closer{name: name, close: fn})
}

// Start blocks until the server stops. A graceful shutdown returns nil.
func (s *Server) Start() error {
	slog.Info("서버 시작 중",
		"port", s.cfg.App.Port,
		"env", s.cfg.App.Env,
		"read_timeout", s.cfg.Server.ReadTimeout,
		"write_timeout", s.cfg.Server.WriteTimeout,
		"request_timeout", s.cfg.Server.RequestTimeout,
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases the registered resources.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)

	for i := len(s.closers) - 1; i >= 0; i-- {
		c := s.closers[i]
		if cerr := c.close(); cerr != nil {
			slog.Error("리소스 종료 실패", "resource", c.name, "error", cerr)
			err = errors.Join(err, fmt.Errorf("close %s: %w", c.name, cerr))
		}
	}
	return err
}
