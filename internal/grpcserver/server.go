// Package grpcserver runs the gRPC health service that orchestrators poll.
package grpcserver

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	addr   string
	health *health.Server
	Server *grpc.Server
}

func New(addr string) *Server {
	s := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	return &Server{
		addr:   addr,
		health: hs,
		Server: s,
	}
}

// SetServing marks the overall service as serving or not serving.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

// Refresh sets the serving status from a dependency check.
func (s *Server) Refresh(ctx context.Context, dep Pinger) error {
	err := dep.Ping(ctx)
	s.SetServing(err == nil)
	return err
}

// Watch re-checks dep every interval until ctx is done, so a store that
// becomes unreachable is reported as NOT_SERVING.
func (s *Server) Watch(ctx context.Context, dep Pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, interval)
			_ = s.Refresh(pingCtx, dep)
			cancel()
		}
	}
}

// Start listens on the configured address and serves until Stop.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve serves on an existing listener. The listener is closed by Stop.
func (s *Server) Serve(lis net.Listener) error {
	return s.Server.Serve(lis)
}

// Stop reports NOT_SERVING to in-flight watchers and drains connections.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.Server.GracefulStop()
}
