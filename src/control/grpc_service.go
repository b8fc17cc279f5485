package control

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"fix-gateway/src/config"
	"fix-gateway/src/logger"
	"fix-gateway/src/sessions"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// -----------------------------------------------------------------------------
// GRPCService exposes the gateway health over the standard gRPC health
// protocol. The status tracks session connectivity: the gateway reports
// SERVING only while every registered counterparty session is logged on.
// -----------------------------------------------------------------------------

const serviceName = "fix_gateway.Gateway"

type GRPCService struct {
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
	config   *config.Config
	logger   *logger.Logger
	registry *sessions.Registry

	stop    chan struct{}
	running atomic.Bool
}

// -----------------------------------------------------------------------------

// NewGRPCService creates a new GRPCService instance
func NewGRPCService(config *config.Config, logger *logger.Logger, registry *sessions.Registry) (*GRPCService, error) {
	address := fmt.Sprintf("%s:%d", config.GRPC_Host, config.GRPC_Port)

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	serverOptions := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(10 * 1024 * 1024), // 10MB
		grpc.MaxSendMsgSize(10 * 1024 * 1024), // 10MB
	}

	return &GRPCService{
		server:   grpc.NewServer(serverOptions...),
		health:   health.NewServer(),
		listener: listener,
		config:   config,
		logger:   logger,
		registry: registry,
		stop:     make(chan struct{}),
	}, nil
}

// -----------------------------------------------------------------------------

// Start serves health checks in the background and keeps the reported status
// in sync with session connectivity.
func (g *GRPCService) Start() error {
	g.logger.Info("Starting gRPC health service on %s", g.listener.Addr().String())

	grpc_health_v1.RegisterHealthServer(g.server, g.health)
	g.health.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	go func() {
		g.running.Store(true)
		if err := g.server.Serve(g.listener); err != nil && err != grpc.ErrServerStopped {
			g.logger.Error("gRPC server failed: %v", err)
		}
		g.running.Store(false)
	}()

	go g.watchSessions()

	g.logger.Info("gRPC health service started on %s", g.listener.Addr().String())
	return nil
}

// -----------------------------------------------------------------------------

// watchSessions polls session connectivity and mirrors it into the health
// status.
func (g *GRPCService) watchSessions() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-g.stop:
			return
		case <-ticker.C:
			status := grpc_health_v1.HealthCheckResponse_SERVING
			targets := g.registry.Targets()
			if len(targets) == 0 {
				status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			}
			for _, target := range targets {
				if !g.registry.Connected(target) {
					status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
					break
				}
			}
			g.health.SetServingStatus(serviceName, status)
		}
	}
}

// -----------------------------------------------------------------------------

// Stop gracefully stops the gRPC server
func (g *GRPCService) Stop(ctx context.Context) error {
	g.logger.Info("Stopping gRPC health service...")
	close(g.stop)
	g.health.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	if g.server != nil {
		done := make(chan struct{})
		go func() {
			g.server.GracefulStop()
			close(done)
		}()

		select {
		case <-ctx.Done():
			g.logger.Warning("gRPC graceful shutdown timeout, forcing stop...")
			g.server.Stop()
		case <-done:
			g.logger.Info("gRPC health service stopped gracefully")
		}
	}

	if g.listener != nil {
		g.listener.Close()
	}

	g.running.Store(false)
	return nil
}

// -----------------------------------------------------------------------------

// IsRunning returns whether the gRPC server is running
func (g *GRPCService) IsRunning() bool {
	return g.running.Load()
}
