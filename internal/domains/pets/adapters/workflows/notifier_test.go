package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
	adoptionworkflows "github.com/Apurer/pet-registry/internal/durable/temporal/workflows/adoption"
)

func TestTemporalNotifier_StartsWorkflowPerPet(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	notification := ports.AdoptionNotification{PetUUID: "pet-uuid", PetName: "Rex"}

	c.On("ExecuteWorkflow", mock.Anything,
		mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
			return o.ID == "adoption-notification-pet-uuid" && o.TaskQueue == adoptionworkflows.NotificationTaskQueue
		}),
		adoptionworkflows.NotificationWorkflowName,
		mock.MatchedBy(func(in adoptionworkflows.NotificationWorkflowInput) bool {
			return in.Notification == notification && in.TraceID != ""
		}),
	).Return(run, nil).Once()

	require.NoError(t, NewTemporalNotifier(c).Notify(context.Background(), notification))
	c.AssertExpectations(t)
}

func TestTemporalNotifier_AlreadyStartedIsNotAnError(t *testing.T) {
	c := &mocks.Client{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("started", "req", "run")).Once()

	require.NoError(t, NewTemporalNotifier(c).Notify(context.Background(), ports.AdoptionNotification{PetUUID: "p"}))
}

func TestTemporalNotifier_PropagatesStartFailures(t *testing.T) {
	c := &mocks.Client{}
	boom := errors.New("frontend unavailable")
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, boom).Once()

	err := NewTemporalNotifier(c).Notify(context.Background(), ports.AdoptionNotification{PetUUID: "p"})
	require.ErrorIs(t, err, boom)
}

func TestTemporalNotifier_NotConfigured(t *testing.T) {
	var n *TemporalNotifier
	require.Error(t, n.Notify(context.Background(), ports.AdoptionNotification{}))
}
