package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"line-webhook-gateway/internal/application"
	"line-webhook-gateway/internal/domain"
)

// idleProcessorClient satisfies the processor port, never expected to be called
type idleProcessorClient struct{}

func (idleProcessorClient) ProcessBatch(ctx context.Context, request domain.ProcessBatchRequest) (*domain.ProcessBatchResponse, error) {
	return &domain.ProcessBatchResponse{}, nil
}

func getHealth(t *testing.T, handler *HTTPHandler) map[string]interface{} {
	t.Helper()
	app := fiber.New()
	app.Get("/health", handler.HealthCheck)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return decoded
}

// TestHealthCheckReportsEnvPresenceBooleans tests that the health payload
// reports which secrets are configured without ever echoing their values.
func TestHealthCheckReportsEnvPresenceBooleans(t *testing.T) {
	handler := New(nil, nil, EnvStatus{
		Env:                "production",
		HasChannelSecret:   true,
		HasProcessorAPIKey: false,
	})

	decoded := getHealth(t, handler)

	env, ok := decoded["env"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected env object, got %v", decoded["env"])
	}
	if env["env"] != "production" {
		t.Errorf("expected env name production, got %v", env["env"])
	}
	if env["hasChannelSecret"] != true {
		t.Errorf("expected hasChannelSecret=true, got %v", env["hasChannelSecret"])
	}
	if env["hasProcessorApiKey"] != false {
		t.Errorf("expected hasProcessorApiKey=false, got %v", env["hasProcessorApiKey"])
	}

	// Presence only: no secret-bearing keys may appear anywhere in the block
	for key := range env {
		switch key {
		case "env", "hasChannelSecret", "hasProcessorApiKey":
		default:
			t.Errorf("unexpected env field %q in health response", key)
		}
	}
}

// TestHealthCheckWithoutDatabaseReportsUnknown tests the degraded shape:
// no database wired yet still answers 200 with database=unknown.
func TestHealthCheckWithoutDatabaseReportsUnknown(t *testing.T) {
	handler := New(nil, nil, EnvStatus{Env: "test"})

	decoded := getHealth(t, handler)

	if decoded["status"] != "ok" {
		t.Errorf("expected status ok, got %v", decoded["status"])
	}
	if decoded["service"] != "LINE Webhook Gateway" {
		t.Errorf("expected service name, got %v", decoded["service"])
	}
	if decoded["database"] != "unknown" {
		t.Errorf("expected database unknown, got %v", decoded["database"])
	}
	if _, hasNotification := decoded["notification"]; hasNotification {
		t.Error("expected no notification block without a notifier")
	}
}

// TestHealthCheckIncludesNotificationSnapshot tests the debounce state
// exposed for observability.
func TestHealthCheckIncludesNotificationSnapshot(t *testing.T) {
	notifier := application.NewBatchNotifier(idleProcessorClient{}, application.BatchNotifierConfig{
		Delay: 5 * time.Second,
	})
	handler := New(nil, notifier, EnvStatus{Env: "test"})

	decoded := getHealth(t, handler)

	notification, ok := decoded["notification"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected notification object, got %v", decoded["notification"])
	}
	if notification["pendingNotification"] != false {
		t.Errorf("expected pendingNotification=false, got %v", notification["pendingNotification"])
	}
	if notification["batchDelay"] != "5s" {
		t.Errorf("expected batchDelay 5s, got %v", notification["batchDelay"])
	}
}
