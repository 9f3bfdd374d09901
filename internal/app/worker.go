package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ShelterApp/internal/core/ports"
	"github.com/GoArmGo/ShelterApp/internal/messaging/payloads"
)

// runWorker consumes queued audit events until ctx is done.
func runWorker(
	ctx context.Context,
	consumer ports.AuditConsumer,
	handler func(context.Context, payloads.AuditEvent) error,
	logger *slog.Logger,
) error {
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := consumer.StartConsumingAuditEvents(workerCtx, handler); err != nil {
		return fmt.Errorf("start audit consumer: %w", err)
	}
	logger.Info("worker started, waiting for audit events")

	<-ctx.Done()

	logger.Info("shutdown signal received, stopping worker")
	return nil
}
