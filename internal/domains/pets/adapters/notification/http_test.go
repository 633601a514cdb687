package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pet-registry/internal/clients/http/notifier"
	"github.com/Apurer/pet-registry/internal/domains/pets/ports"
)

var adoption = ports.AdoptionNotification{
	PetUUID:       "0b7e2c4e-7c1f-4a55-9d1e-5d0c1f3b8a11",
	PetName:       "Rex",
	OwnerName:     "Jose Morales",
	OwnerEmail:    "owner@example.com",
	AdopterName:   "Miriam Lopez",
	AdopterEmail:  "miriam@example.com",
	AdopterMobile: "5550001",
}

func TestHTTPGateway_SendsMessagingPayload(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client, err := notifier.NewClient(server.URL, server.Client())
	require.NoError(t, err)
	gateway := NewHTTPGateway(client, "secret", "adoption")

	require.NoError(t, gateway.Notify(context.Background(), adoption))
	require.Equal(t, map[string]string{
		"email":        "owner@example.com",
		"name":         "Rex",
		"contactName":  "Miriam Lopez",
		"emailContact": "miriam@example.com",
		"message":      "5550001",
		"token":        "secret",
		"template":     "adoption",
	}, got)
}

type failingSender struct{}

func (failingSender) Send(context.Context, notifier.Message) error { return errors.New("unreachable") }

func TestHTTPGateway_PropagatesFailure(t *testing.T) {
	gateway := NewHTTPGateway(failingSender{}, "", "")
	require.Error(t, gateway.Notify(context.Background(), adoption))
}

func TestLogGateway(t *testing.T) {
	var buf bytes.Buffer
	gateway := NewLogGateway(slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, gateway.Notify(context.Background(), adoption))
	require.Contains(t, buf.String(), `"pet.name":"Rex"`)
}
