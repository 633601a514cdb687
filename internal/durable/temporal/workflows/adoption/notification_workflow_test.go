package adoption

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	petsports "github.com/Apurer/pet-registry/internal/domains/pets/ports"
	adoptionactivities "github.com/Apurer/pet-registry/internal/durable/temporal/activities/adoption"
)

type recordingGateway struct {
	calls    int
	failures int
	last     petsports.AdoptionNotification
}

func (g *recordingGateway) Notify(_ context.Context, n petsports.AdoptionNotification) error {
	g.calls++
	if g.calls <= g.failures {
		return errors.New("messaging service unavailable")
	}
	g.last = n
	return nil
}

func newEnv(t *testing.T, gateway petsports.NotificationGateway) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	acts := adoptionactivities.NewActivities(gateway)
	env.RegisterActivityWithOptions(acts.NotifyOwner, activity.RegisterOptions{Name: adoptionactivities.NotifyOwnerActivityName})
	return env
}

func TestNotificationWorkflow_Delivers(t *testing.T) {
	gateway := &recordingGateway{}
	env := newEnv(t, gateway)

	env.ExecuteWorkflow(NotificationWorkflow, NotificationWorkflowInput{
		Notification: petsports.AdoptionNotification{PetUUID: "pet-1", PetName: "Rex", OwnerEmail: "owner@example.com"},
		TraceID:      "abc",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	require.Equal(t, 1, gateway.calls)
	require.Equal(t, "Rex", gateway.last.PetName)
}

func TestNotificationWorkflow_RetriesTransientFailures(t *testing.T) {
	gateway := &recordingGateway{failures: 2}
	env := newEnv(t, gateway)

	env.ExecuteWorkflow(NotificationWorkflow, NotificationWorkflowInput{
		Notification: petsports.AdoptionNotification{PetUUID: "pet-2", OwnerEmail: "owner@example.com"},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	require.Equal(t, 3, gateway.calls)
}

func TestNotificationWorkflow_GivesUpAfterMaxAttempts(t *testing.T) {
	gateway := &recordingGateway{failures: 10}
	env := newEnv(t, gateway)

	env.ExecuteWorkflow(NotificationWorkflow, NotificationWorkflowInput{
		Notification: petsports.AdoptionNotification{PetUUID: "pet-3"},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	require.Equal(t, 5, gateway.calls)
}
