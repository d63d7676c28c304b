package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/portfolio-service/internal/platform/config"
)

// drainTimeout bounds Shutdown when the caller's context has no deadline.
const drainTimeout = 10 * time.Second

// Server serves the API and drains in-flight requests on shutdown.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds a Server listening on cfg.Host:cfg.Port. Connection-level
// errors from net/http are written to logger at warn level.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger: logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start binds the configured address and serves on it. It returns nil once
// Shutdown has been called.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln and closes it on return.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("portfolio API listening", slog.String("addr", ln.Addr().String()))

	err := s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serving http: %w", err)
}

// Shutdown stops accepting connections and waits for in-flight requests.
// Without a deadline on ctx, drainTimeout applies.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, drainTimeout)
		defer cancel()
	}

	s.logger.Info("draining HTTP connections")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("draining connections: %w", err)
	}
	return nil
}
