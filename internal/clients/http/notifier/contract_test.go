//go:build pact
// +build pact

package notifier_test

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pet-registry/internal/clients/http/notifier"
)

const (
	consumerName = "pet-registry"
	providerName = "messaging-service"

	stateTokenValid   = "token registry-token is valid"
	stateTokenRevoked = "token revoked-token is revoked"
)

func exampleMessage(token string) notifier.Message {
	return notifier.Message{
		Email:        "owner@example.com",
		Name:         "Olivia Owner",
		ContactName:  "Adam Adopter",
		EmailContact: "adopter@example.com",
		Message:      "Rex was adopted. Call 5550001.",
		Token:        token,
		Template:     "adoption",
	}
}

func messageMatcher(msg notifier.Message) matchers.Map {
	return matchers.Map{
		"email":        matchers.Term(msg.Email, `^[^@\s]+@[^@\s]+$`),
		"name":         matchers.Like(msg.Name),
		"contactName":  matchers.Like(msg.ContactName),
		"emailContact": matchers.Term(msg.EmailContact, `^[^@\s]+@[^@\s]+$`),
		"message":      matchers.Like(msg.Message),
		"token":        matchers.S(msg.Token),
		"template":     matchers.Like(msg.Template),
	}
}

func TestMessagingServiceContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: consumerName,
		Provider: providerName,
		PactDir:  pactDir(t),
		LogDir:   logDir(t),
	})
	require.NoError(t, err)

	accepted := exampleMessage("registry-token")
	revoked := exampleMessage("revoked-token")

	pact.AddInteraction().
		Given(stateTokenValid).
		UponReceiving("an adoption notification for the previous owner").
		WithRequest(http.MethodPost, "/message", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(messageMatcher(accepted))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.Regex("application/json", `application\/json.*`))
			b.JSONBody(matchers.Map{"status": matchers.Like("sent")})
		})

	pact.AddInteraction().
		Given(stateTokenRevoked).
		UponReceiving("an adoption notification with a revoked token").
		WithRequest(http.MethodPost, "/message", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(messageMatcher(revoked))
		}).
		WillRespondWith(http.StatusUnauthorized, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.Regex("application/json", `application\/json.*`))
			b.JSONBody(matchers.Map{
				"message": matchers.S("token revoked"),
				"status":  matchers.Like("error"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := notifier.NewClient(fmt.Sprintf("http://%s:%d", host, config.Port), &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Send(ctx, accepted); err != nil {
			return fmt.Errorf("send accepted message: %w", err)
		}
		err = client.Send(ctx, revoked)
		if err == nil {
			return fmt.Errorf("expected revoked token to be rejected")
		}
		if got := err.Error(); got != "notifier error: token revoked" {
			return fmt.Errorf("unexpected error for revoked token: %s", got)
		}
		return nil
	})
	require.NoError(t, err)
}

func pactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func logDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

// projectRoot walks up from this file to the module root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "cannot determine caller for pact paths")
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..", "..", ".."))
}
