package notification

import (
	"context"
	"log/slog"

	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
)

var _ ports.NotificationGateway = (*LogGateway)(nil)

// LogGateway writes notifications to the log. Used when no messaging service is configured.
type LogGateway struct {
	logger *slog.Logger
}

func NewLogGateway(logger *slog.Logger) *LogGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogGateway{logger: logger}
}

func (g *LogGateway) Notify(ctx context.Context, n ports.AdoptionNotification) error {
	g.logger.LogAttrs(ctx, slog.LevelInfo, "adoption notification",
		slog.String("pet.uuid", n.PetUUID),
		slog.String("pet.name", n.PetName),
		slog.String("owner.email", n.OwnerEmail),
		slog.String("adopter.name", n.AdopterName),
	)
	return nil
}
