package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const systemMetricsInterval = 15 * time.Second

// Server exposes the Prometheus registry and a health endpoint over HTTP.
type Server struct {
	config *config.MetricsConfig
	log    *logger.Logger

	server   *http.Server
	listener net.Listener
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewServer(config *config.MetricsConfig, log *logger.Logger) *Server {
	return &Server{
		config: config,
		log:    log,
	}
}

// Handler serves the registry on the configured path. /health answers 503 naming the
// components that last reported themselves unhealthy.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET "+s.config.Path, promhttp.Handler())

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		if down := UnhealthyComponents(); len(down) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, "unhealthy: %s", strings.Join(down, ", "))
			return
		}

		_, _ = w.Write([]byte("OK"))
	})

	return mux
}

// Start binds the listen address and serves in the background. A bind failure is returned
// rather than logged so a misconfigured address stops the node at startup.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	s.listener = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.refreshSystemMetrics(ctx)
	}()

	go func() {
		s.log.Infof("metrics server listening on %s%s", ln.Addr(), s.config.Path)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("metrics server error: %v", err)
		}
	}()

	return nil
}

// Addr is the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.cancel()
	<-s.done

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}

	return nil
}

func (s *Server) refreshSystemMetrics(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		UpdateSystemMetrics()

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
