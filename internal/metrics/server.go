package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultEndpoint is the path metrics are served on.
const DefaultEndpoint = "/metrics"

// Server serves a recorder's registry over HTTP.
type Server struct {
	server   *http.Server
	listener net.Listener
	addr     string
	endpoint string
	logger   *log.Logger
}

// NewServer creates a metrics server for addr (host:port).
func NewServer(addr string, rec *Recorder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	mux := http.NewServeMux()
	mux.Handle(DefaultEndpoint, promhttp.HandlerFor(rec.Registry(), promhttp.HandlerOpts{}))

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr:     addr,
		endpoint: DefaultEndpoint,
		logger:   logger,
	}
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("metrics: cannot listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	go func() {
		s.logger.Info("Metrics server listening", "addr", ln.Addr().String(), "endpoint", s.endpoint)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Metrics server failed", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("metrics: shutdown: %w", err)
	}
	s.logger.Info("Metrics server stopped")
	return nil
}
