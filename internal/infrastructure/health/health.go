// Package health exposes the gRPC health checking protocol so orchestrators
// can check the annotation server without touching the HTTP API.
package health

import (
	"context"
	"net"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the service reported alongside the overall ("") status.
const ServiceName = "annostore.v1.AnnotationStore"

// Server wraps a gRPC server carrying only the health service.
type Server struct {
	grpcServer *grpc.Server
	health     *grpchealth.Server
}

// NewServer creates a health server reporting NOT_SERVING until SetServing(true).
func NewServer() *Server {
	gs := grpc.NewServer()
	hs := grpchealth.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	// Register reflection service (for grpcurl, etc.)
	reflection.Register(gs)

	s := &Server{grpcServer: gs, health: hs}
	s.SetServing(false)
	return s
}

// SetServing updates the reported status of the server and of ServiceName.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve accepts connections on lis until Stop or Shutdown.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// Shutdown stops the server gracefully, forcing a stop when ctx expires.
func (s *Server) Shutdown(ctx context.Context) {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		s.grpcServer.Stop()
	}
}
