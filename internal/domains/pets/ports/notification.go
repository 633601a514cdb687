package ports

import (
	"context"
	"time"
)

// AdoptionNotification tells the previous owner who adopted their pet.
type AdoptionNotification struct {
	PetUUID       string
	PetName       string
	OwnerName     string
	OwnerEmail    string
	AdopterName   string
	AdopterEmail  string
	AdopterMobile string
	AdoptedAt     time.Time
}

// NotificationGateway delivers adoption notifications (outbound port).
type NotificationGateway interface {
	Notify(ctx context.Context, notification AdoptionNotification) error
}
