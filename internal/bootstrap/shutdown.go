package bootstrap

import (
	"context"
	"log/slog"

	"github.com/slabworks/cardstand/internal/fulfillment"
	"github.com/slabworks/cardstand/internal/scheduler"
	"github.com/slabworks/cardstand/internal/server"
	"github.com/slabworks/cardstand/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	FulfillmentService fulfillment.Service
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (stop enqueueing sweep jobs)
// 3. Worker pool (drain queued jobs)
// 4. Fulfillment service (wait for in-flight notification sends)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.FulfillmentService != nil {
		slog.Info(LogMsgDrainingNotifications)
		if err := components.FulfillmentService.Shutdown(ctx); err != nil {
			slog.Error(LogMsgFulfillmentShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
