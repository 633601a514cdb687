package adoption

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	petsports "github.com/Apurer/pet-registry/internal/domains/pets/ports"
)

// NotifyOwnerActivityName delivers the adoption notification to the previous owner.
const NotifyOwnerActivityName = "adoption.activities.NotifyOwner"

// Activities groups the activities of the adoption notification workflow.
type Activities struct {
	gateway petsports.NotificationGateway
}

// NewActivities wires the gateway that actually delivers notifications.
func NewActivities(gateway petsports.NotificationGateway) *Activities {
	return &Activities{gateway: gateway}
}

// NotifyOwner sends the notification once. A heartbeat marks delivery so a retried
// attempt does not message the owner twice.
func (a *Activities) NotifyOwner(ctx context.Context, notification petsports.AdoptionNotification) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.gateway == nil {
		logger.Error("notify owner activity not initialized", "petUuid", notification.PetUUID)
		return errors.New("notify owner activity not initialized")
	}

	var hb deliveryHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Delivered {
		logger.Info("NotifyOwner already delivered in prior attempt; skipping", "petUuid", notification.PetUUID)
		return nil
	}

	logger.Info("NotifyOwner activity started", "petUuid", notification.PetUUID)
	if err := a.gateway.Notify(ctx, notification); err != nil {
		logger.Error("NotifyOwner failed", "petUuid", notification.PetUUID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, deliveryHeartbeat{Delivered: true})
	logger.Info("NotifyOwner activity completed", "petUuid", notification.PetUUID)
	return nil
}

type deliveryHeartbeat struct {
	Delivered bool
}
