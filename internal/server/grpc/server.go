// Package grpc serves the standard gRPC health protocol next to the HTTP API
// so that orchestrators can probe the cache and the database.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported alongside the overall ("") status.
const ServiceName = "files_manager"

const defaultInterval = 10 * time.Second

type StatusChecker interface {
	Status(ctx context.Context) services.Status
}

type HealthServer struct {
	address  string
	checker  StatusChecker
	interval time.Duration
	logger   logging.Logger
	health   *health.Server
}

func NewHealthServer(a string, l logging.Logger, checker StatusChecker, interval time.Duration) *HealthServer {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &HealthServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		checker:  checker,
		interval: interval,
		health:   health.NewServer(),
	}
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HealthServer) serve(ctx context.Context, listen net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	// registers services
	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)

	s.refresh(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				s.refresh(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

// refresh publishes the current backing store status.
func (s *HealthServer) refresh(ctx context.Context) {
	st := s.checker.Status(ctx)

	serving := healthpb.HealthCheckResponse_SERVING
	if !st.Healthy() {
		serving = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn(ctx, "backing store unavailable", "cache_alive", st.CacheAlive, "store_alive", st.StoreAlive)
	}

	s.health.SetServingStatus("", serving)
	s.health.SetServingStatus(ServiceName, serving)
}
