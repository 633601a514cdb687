package adoption

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	petsports "github.com/Apurer/pet-registry/internal/domains/pets/ports"
	adoptionactivities "github.com/Apurer/pet-registry/internal/durable/temporal/activities/adoption"
)

const (
	// NotificationWorkflowName is the public identifier for registering the workflow.
	NotificationWorkflowName = "adoption.workflows.Notification"
	// NotificationTaskQueue is the queue consumed by the worker delivering adoption notifications.
	NotificationTaskQueue = "ADOPTION_NOTIFICATION"
)

// NotificationWorkflowInput carries the notification and the trace of the adoption request.
type NotificationWorkflowInput struct {
	Notification petsports.AdoptionNotification
	TraceID      string
}

// NotificationWorkflow delivers an adoption notification with retries.
func NotificationWorkflow(ctx workflow.Context, input NotificationWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	petUUID := input.Notification.PetUUID
	logger.Info("NotificationWorkflow started", withTraceID(input.TraceID, "petUuid", petUUID)...)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		HeartbeatTimeout:    20 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	})
	err := workflow.ExecuteActivity(ctx, adoptionactivities.NotifyOwnerActivityName, input.Notification).Get(ctx, nil)
	if err != nil {
		logger.Error("NotificationWorkflow failed", withTraceID(input.TraceID, "petUuid", petUUID, "error", err)...)
		return err
	}
	logger.Info("NotificationWorkflow completed", withTraceID(input.TraceID, "petUuid", petUUID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
