// Package server exposes the firehose over gRPC as the sf.firehose.v2 Stream and Fetch services.
package server

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net"
	"time"

	"github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/internal/metrics"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const shutdownTimeout = 10 * time.Second

var (
	BlocksMethod = "/" + pbfirehose.Stream_ServiceDesc.ServiceName + "/Blocks"
	BlockMethod  = "/" + pbfirehose.Fetch_ServiceDesc.ServiceName + "/Block"
)

// Service is the backend the gRPC services delegate to.
type Service interface {
	Blocks(ctx context.Context, req *pbfirehose.Request) (iter.Seq2[*pbfirehose.Response, error], error)
	Block(ctx context.Context, req *pbfirehose.SingleBlockRequest) (*pbfirehose.SingleBlockResponse, error)
}

// Server serves the Stream and Fetch services and, when enabled, the standard health service.
type Server struct {
	pbfirehose.UnimplementedStreamServer
	pbfirehose.UnimplementedFetchServer

	cfg     config.GRPCConfig
	service Service
	grpc    *grpc.Server
	health  *health.Server
	log     *logger.Logger
}

// New creates a gRPC server backed by service. cfg must have its defaults applied.
func New(cfg config.GRPCConfig, service Service, log *logger.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		service: service,
		log:     log.WithComponent(common.ComponentGRPCServer),
		grpc:    grpc.NewServer(grpc.MaxSendMsgSize(cfg.MaxSendMsgSize())),
	}

	pbfirehose.RegisterStreamServer(s.grpc, s)
	pbfirehose.RegisterFetchServer(s.grpc, s)

	if cfg.HealthCheck {
		s.health = health.NewServer()
		healthpb.RegisterHealthServer(s.grpc, s.health)
	}

	return s
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.setServing(healthpb.HealthCheckResponse_SERVING)
	metrics.ComponentHealthSet(common.ComponentGRPCServer, true)

	s.log.Infof("gRPC server listening on %s", lis.Addr())

	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		metrics.ComponentHealthSet(common.ComponentGRPCServer, false)
		return fmt.Errorf("gRPC server error: %w", err)
	}

	return nil
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddress, err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(lis) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Stop()

	return <-errCh
}

// Stop drains in-flight calls and closes the listener. Streams still open after the
// shutdown timeout are cancelled.
func (s *Server) Stop() {
	s.log.Info("shutting down gRPC server...")
	if s.health != nil {
		s.health.Shutdown()
	}
	metrics.ComponentHealthSet(common.ComponentGRPCServer, false)

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		s.log.Warn("graceful shutdown timed out, closing open streams")
		s.grpc.Stop()
		<-done
	}

	s.log.Info("gRPC server stopped")
}

func (s *Server) setServing(st healthpb.HealthCheckResponse_ServingStatus) {
	if s.health == nil {
		return
	}

	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(pbfirehose.Stream_ServiceDesc.ServiceName, st)
	s.health.SetServingStatus(pbfirehose.Fetch_ServiceDesc.ServiceName, st)
}

// Blocks serves sf.firehose.v2.Stream/Blocks.
func (s *Server) Blocks(req *pbfirehose.Request, stream pbfirehose.Stream_BlocksServer) error {
	ctx := stream.Context()
	start := time.Now()

	s.log.Debugw("stream opened",
		"start_block", req.StartBlockNum,
		"stop_block", req.StopBlockNum,
		"cursor", req.Cursor,
		"transforms", len(req.Transforms),
	)

	responses, err := s.service.Blocks(ctx, req)
	if err != nil {
		return s.fail(BlocksMethod, err)
	}

	var sent int
	for resp, err := range responses {
		if err != nil {
			return s.fail(BlocksMethod, err)
		}

		if err := stream.Send(resp); err != nil {
			s.log.Debugf("stream send failed after %d responses: %v", sent, err)
			return err
		}
		sent++
	}

	s.log.Debugw("stream completed", "responses", sent, "duration", time.Since(start))

	return nil
}

// Block serves sf.firehose.v2.Fetch/Block.
func (s *Server) Block(ctx context.Context, req *pbfirehose.SingleBlockRequest) (*pbfirehose.SingleBlockResponse, error) {
	resp, err := s.service.Block(ctx, req)
	if err != nil {
		return nil, s.fail(BlockMethod, err)
	}

	return resp, nil
}

func (s *Server) fail(method string, err error) error {
	st := toStatus(err)

	switch code := status.Code(st); code {
	case codes.Internal, codes.Unknown:
		metrics.ErrorsInc(common.ComponentGRPCServer, "internal")
		s.log.Errorf("%s failed: %v", method, err)
	default:
		s.log.Debugf("%s rejected with %s: %v", method, code, err)
	}

	return st
}
