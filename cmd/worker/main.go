package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pet-registry/internal/app"
	adoptionactivities "github.com/Apurer/pet-registry/internal/durable/temporal/activities/adoption"
	adoptionworkflows "github.com/Apurer/pet-registry/internal/durable/temporal/workflows/adoption"
	platformobservability "github.com/Apurer/pet-registry/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	const serviceName = "pet-registry-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := app.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	gateway, err := app.NotificationGateway(cfg, logger)
	if err != nil {
		logger.Error("failed to configure notification gateway", slog.String("error", err.Error()))
		os.Exit(1)
	}
	notifyActivities := adoptionactivities.NewActivities(gateway)

	temporalClient, err := app.ConnectTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, adoptionworkflows.NotificationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(adoptionworkflows.NotificationWorkflow, workflow.RegisterOptions{Name: adoptionworkflows.NotificationWorkflowName})
	w.RegisterActivityWithOptions(notifyActivities.NotifyOwner, activity.RegisterOptions{Name: adoptionactivities.NotifyOwnerActivityName})

	logger.Info("worker listening", slog.String("taskQueue", adoptionworkflows.NotificationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
