package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	adoptionworkflows "github.com/Apurer/pet-registry/internal/durable/temporal/workflows/adoption"
)

var _ ports.NotificationGateway = (*TemporalNotifier)(nil)

// TemporalNotifier hands adoption notifications to a durable workflow so delivery
// is retried outside the request that finalized the adoption.
type TemporalNotifier struct {
	client    client.Client
	taskQueue string
}

// NewTemporalNotifier wires a Temporal client into the notifier.
func NewTemporalNotifier(c client.Client) *TemporalNotifier {
	return &TemporalNotifier{client: c, taskQueue: adoptionworkflows.NotificationTaskQueue}
}

// Notify starts the notification workflow and returns once it is accepted.
// A pet is adopted at most once, so a workflow already started for it counts as delivered.
func (n *TemporalNotifier) Notify(ctx context.Context, notification ports.AdoptionNotification) error {
	if n == nil || n.client == nil {
		return errors.New("temporal notifier not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        NotificationWorkflowID(notification.PetUUID),
		TaskQueue: n.taskQueue,
	}
	_, err := n.client.ExecuteWorkflow(
		ctx,
		options,
		adoptionworkflows.NotificationWorkflowName,
		adoptionworkflows.NotificationWorkflowInput{Notification: notification, TraceID: workflowTraceComponent(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// NotificationWorkflowID is deterministic per pet.
func NotificationWorkflowID(petUUID string) string {
	return fmt.Sprintf("adoption-notification-%s", petUUID)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
