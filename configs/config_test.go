package configs

import (
	"os"
	"testing"
)

// setupTestEnv sets up required environment variables for config unmarshaling
func setupTestEnv() {
	os.Setenv("APP_DEBUG", "false")
	os.Setenv("APP_ENV", "test")
	os.Setenv("APP_PORT", "8080")
	os.Setenv("POSTGRES_HOST", "localhost")
	os.Setenv("POSTGRES_PORT", "5432")
	os.Setenv("POSTGRES_USERNAME", "test")
	os.Setenv("POSTGRES_PASSWORD", "test")
	os.Setenv("POSTGRES_DATABASE", "test")
	os.Setenv("POSTGRES_SSLMODE", "false")
	os.Setenv("LINE_CHANNEL_SECRET", "test-secret")
	os.Setenv("PROCESSOR_URL", "http://localhost:3000/api/chat/line/process-webhooks")
	os.Setenv("PROCESSOR_API_KEY", "test-api-key")
	os.Setenv("PROCESSOR_CHANNEL", "line_2")
}

// cleanupTestEnv cleans up environment variables after tests
func cleanupTestEnv() {
	os.Unsetenv("APP_DEBUG")
	os.Unsetenv("APP_ENV")
	os.Unsetenv("APP_PORT")
	os.Unsetenv("POSTGRES_HOST")
	os.Unsetenv("POSTGRES_PORT")
	os.Unsetenv("POSTGRES_USERNAME")
	os.Unsetenv("POSTGRES_PASSWORD")
	os.Unsetenv("POSTGRES_DATABASE")
	os.Unsetenv("POSTGRES_SSLMODE")
	os.Unsetenv("LINE_CHANNEL_SECRET")
	os.Unsetenv("PROCESSOR_URL")
	os.Unsetenv("PROCESSOR_API_KEY")
	os.Unsetenv("PROCESSOR_CHANNEL")
	os.Unsetenv("PROCESSOR_BATCH_LIMIT")
	os.Unsetenv("PROCESSOR_DEBOUNCE_DELAY")
	os.Unsetenv("WEBHOOK_PERSIST")
	os.Unsetenv("WEBHOOK_NOTIFY")
	os.Unsetenv("WEBHOOK_CACHE_VALIDATE")
}

// TestProcessorDefaultsApplied tests that batch size and debounce delay fall
// back to their safe defaults when not configured.
func TestProcessorDefaultsApplied(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Processor.BatchLimit != 50 {
		t.Errorf("expected default batch limit 50, got %d", cfg.Processor.BatchLimit)
	}
	if cfg.Processor.DebounceDelay != 5 {
		t.Errorf("expected default debounce delay 5, got %d", cfg.Processor.DebounceDelay)
	}
	if cfg.Processor.Timeout != 30 {
		t.Errorf("expected default timeout 30, got %d", cfg.Processor.Timeout)
	}
}

// TestCapabilityFlagsDefaultOn tests that persist/cache/notify default to on.
func TestCapabilityFlagsDefaultOn(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	InitViper(".", "test")
	cfg := GetViper()

	if !cfg.Webhook.Persist || !cfg.Webhook.CacheValidate || !cfg.Webhook.Notify {
		t.Errorf("expected all capability flags on by default, got %+v", cfg.Webhook)
	}
}

// TestCapabilityFlagsUnmarshalFromEnv tests overriding the flags.
func TestCapabilityFlagsUnmarshalFromEnv(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("WEBHOOK_PERSIST", "false")
	os.Setenv("WEBHOOK_NOTIFY", "false")

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Webhook.Persist {
		t.Error("expected persist to be disabled")
	}
	if cfg.Webhook.Notify {
		t.Error("expected notify to be disabled")
	}
	if !cfg.Webhook.CacheValidate {
		t.Error("expected cache_validate to stay on")
	}
}

// TestProcessorConfigUnmarshal tests that processor settings come through.
func TestProcessorConfigUnmarshal(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("PROCESSOR_BATCH_LIMIT", "25")
	os.Setenv("PROCESSOR_DEBOUNCE_DELAY", "10")

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Processor.Channel != "line_2" {
		t.Errorf("expected channel line_2, got %q", cfg.Processor.Channel)
	}
	if cfg.Processor.BatchLimit != 25 {
		t.Errorf("expected batch limit 25, got %d", cfg.Processor.BatchLimit)
	}
	if cfg.Processor.DebounceDelay != 10 {
		t.Errorf("expected debounce delay 10, got %d", cfg.Processor.DebounceDelay)
	}
}

// TestValidateProductionSecretsFailsWithoutChannelSecret tests the fail-fast
// rule: production with no channel secret must refuse to start.
func TestValidateProductionSecretsFailsWithoutChannelSecret(t *testing.T) {
	cfg := &Config{
		App:     App{Env: "production"},
		Webhook: Webhook{Notify: true},
	}
	if err := cfg.ValidateProductionSecrets(); err == nil {
		t.Error("expected an error for missing channel secret in production")
	}
}

// TestValidateProductionSecretsFailsWithoutAPIKey tests that notification in
// production requires a processor API key.
func TestValidateProductionSecretsFailsWithoutAPIKey(t *testing.T) {
	cfg := &Config{
		App:     App{Env: "production"},
		Line:    Line{ChannelSecret: "secret"},
		Webhook: Webhook{Notify: true},
	}
	if err := cfg.ValidateProductionSecrets(); err == nil {
		t.Error("expected an error for missing API key in production")
	}
}

// TestValidateProductionSecretsAllowsNonProduction tests there is no
// fail-fast outside production.
func TestValidateProductionSecretsAllowsNonProduction(t *testing.T) {
	cfg := &Config{App: App{Env: "development"}}
	if err := cfg.ValidateProductionSecrets(); err != nil {
		t.Errorf("expected no error outside production, got %v", err)
	}
}

// TestValidateProductionSecretsPassesWhenConfigured tests the happy path.
func TestValidateProductionSecretsPassesWhenConfigured(t *testing.T) {
	cfg := &Config{
		App:       App{Env: "production"},
		Line:      Line{ChannelSecret: "secret"},
		Processor: Processor{APIKey: "key"},
		Webhook:   Webhook{Notify: true},
	}
	if err := cfg.ValidateProductionSecrets(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
