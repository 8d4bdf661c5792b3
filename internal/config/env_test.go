package config

import (
	"os"
	"testing"
	"time"
)

func TestApplyEnvOverrides(t *testing.T) {
	cleanup := applyEnvSetup(t)
	defer cleanup()

	cfg := DefaultConfig()
	if err := ApplyEnvOverrides(cfg); err != nil {
		t.Fatalf("ApplyEnvOverrides failed: %v", err)
	}
	validateAppliedEnvOverrides(t, cfg)
}

func applyEnvSetup(t *testing.T) func() {
	t.Helper()
	vars := map[string]string{
		"TOWNCRIER_NOTIFY_TIMEOUT":  "45s",
		"TOWNCRIER_SLACK_WEBHOOK":   "https://hooks.slack.test/x",
		"TOWNCRIER_DISCORD_TOKEN":   "dtok",
		"TOWNCRIER_TELEGRAM_TOKEN":  "ttok",
		"TOWNCRIER_EMAIL_HOST":      "mail.test",
		"TOWNCRIER_EMAIL_PORT":      "587",
		"TOWNCRIER_EMAIL_TO":        "a@b.test, c@d.test",
		"TOWNCRIER_METRICS_ENABLED": "true",
		"TOWNCRIER_METRICS_PORT":    "9100",
		"TOWNCRIER_INFLUX_URL":      "http://influx:8086",
		"TOWNCRIER_INFLUX_BUCKET":   "b",
		"TOWNCRIER_INFLUX_ORG":      "o",
		"TOWNCRIER_INFLUX_TOKEN":    "t",
		"TOWNCRIER_INFLUX_INTERVAL": "30s",
	}
	for k, v := range vars {
		os.Setenv(k, v)
	}
	return func() {
		for k := range vars {
			os.Unsetenv(k)
		}
	}
}

func validateAppliedEnvOverrides(t *testing.T, cfg *Config) {
	t.Helper()
	if cfg.NotifyTimeout != 45*time.Second {
		t.Fatalf("expected timeout 45s, got %v", cfg.NotifyTimeout)
	}
	if cfg.SlackWebhook != "https://hooks.slack.test/x" {
		t.Fatalf("unexpected slack webhook: %s", cfg.SlackWebhook)
	}
	if cfg.DiscordToken != "dtok" || cfg.TelegramToken != "ttok" {
		t.Fatalf("bot tokens not applied: %q %q", cfg.DiscordToken, cfg.TelegramToken)
	}
	if cfg.EmailHost != "mail.test" || cfg.EmailPort != 587 {
		t.Fatalf("email host/port not applied: %s:%d", cfg.EmailHost, cfg.EmailPort)
	}
	if len(cfg.EmailTo) != 2 || cfg.EmailTo[1] != "c@d.test" {
		t.Fatalf("email recipients not trimmed/applied: %v", cfg.EmailTo)
	}
	if !cfg.MetricsEnabled || cfg.MetricsPort != 9100 {
		t.Fatalf("metrics env not applied: %v %d", cfg.MetricsEnabled, cfg.MetricsPort)
	}
	if cfg.InfluxURL != "http://influx:8086" || cfg.InfluxInterval != 30*time.Second {
		t.Fatalf("influx env not applied: %s %v", cfg.InfluxURL, cfg.InfluxInterval)
	}
}

func TestApplyEnvOverridesInvalid(t *testing.T) {
	os.Setenv("TOWNCRIER_EMAIL_PORT", "not-a-number")
	defer os.Unsetenv("TOWNCRIER_EMAIL_PORT")

	if err := ApplyEnvOverrides(DefaultConfig()); err == nil {
		t.Fatal("expected error for invalid port")
	}

	os.Unsetenv("TOWNCRIER_EMAIL_PORT")
	os.Setenv("TOWNCRIER_NOTIFY_TIMEOUT", "soon")
	defer os.Unsetenv("TOWNCRIER_NOTIFY_TIMEOUT")
	if err := ApplyEnvOverrides(DefaultConfig()); err == nil {
		t.Fatal("expected error for invalid timeout")
	}
}
