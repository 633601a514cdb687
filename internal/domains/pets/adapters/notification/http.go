package notification

import (
	"context"
	"errors"

	"github.com/Apurer/pet-registry/internal/clients/http/notifier"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
)

var _ ports.NotificationGateway = (*HTTPGateway)(nil)

// Sender posts a message to the messaging service.
type Sender interface {
	Send(ctx context.Context, msg notifier.Message) error
}

// HTTPGateway sends adoption notifications through the messaging service.
// The owner receives the adopter's name, email and mobile rendered by the named template.
type HTTPGateway struct {
	sender   Sender
	token    string
	template string
}

func NewHTTPGateway(sender Sender, token, template string) *HTTPGateway {
	return &HTTPGateway{sender: sender, token: token, template: template}
}

// Notify maps the notification onto the messaging payload and sends it.
func (g *HTTPGateway) Notify(ctx context.Context, n ports.AdoptionNotification) error {
	if g == nil || g.sender == nil {
		return errors.New("http notification gateway not configured")
	}
	return g.sender.Send(ctx, notifier.Message{
		Email:        n.OwnerEmail,
		Name:         n.PetName,
		ContactName:  n.AdopterName,
		EmailContact: n.AdopterEmail,
		Message:      n.AdopterMobile,
		Token:        g.token,
		Template:     g.template,
	})
}
