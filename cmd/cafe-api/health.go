package main

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MikeMC777/cafe-demo/internal/logger"
)

const healthService = "cafe.api"

// pinger is satisfied by *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

// dbHealth mirrors database reachability into a grpc health server.
type dbHealth struct {
	srv  *health.Server
	db   pinger
	log  logger.Logger
	last healthpb.HealthCheckResponse_ServingStatus
}

func newDBHealth(db pinger, log logger.Logger) *dbHealth {
	return &dbHealth{srv: health.NewServer(), db: db, log: log, last: healthpb.HealthCheckResponse_UNKNOWN}
}

func (h *dbHealth) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.db.Ping(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		if h.last != status {
			h.log.WithError(err).Warn("database unreachable", nil)
		}
	}
	h.last = status
	h.srv.SetServingStatus("", status)
	h.srv.SetServingStatus(healthService, status)
}

// watch re-checks every interval until ctx ends, then reports NOT_SERVING.
func (h *dbHealth) watch(ctx context.Context, every time.Duration) {
	h.check(ctx)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			h.srv.Shutdown()
			return
		case <-t.C:
			h.check(ctx)
		}
	}
}
