package main

import (
	"testing"

	"github.com/towncrier/towncrier/internal/config"
)

func TestBuildDispatcher(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SlackWebhook = "https://hooks.slack.test/x"
	cfg.TeamsWebhook = "https://teams.test/hook"
	cfg.EmailHost = "mail.test"
	cfg.EmailTo = []string{"a@b.test"}
	cfg.GenericWebhookURL = "https://hook.test/x"

	d, err := buildDispatcher(cfg)
	if err != nil {
		t.Fatalf("buildDispatcher failed: %v", err)
	}
	if d.Len() != 4 {
		t.Fatalf("expected 4 channels, got %d (%v)", d.Len(), d.Names())
	}
	names := d.Names()
	want := []string{"Slack", "Teams", "Email", "GenericWebhook"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("unexpected channel order: %v, want %v", names, want)
		}
	}
}

func TestBuildDispatcherEmpty(t *testing.T) {
	d, err := buildDispatcher(config.DefaultConfig())
	if err != nil {
		t.Fatalf("buildDispatcher failed: %v", err)
	}
	if d.Len() != 0 {
		t.Fatalf("expected no channels, got %d", d.Len())
	}
}

func TestBuildDispatcherBadTelegramChatID(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TelegramToken = "tok"
	cfg.TelegramChatID = "not-a-number"

	if _, err := buildDispatcher(cfg); err == nil {
		t.Fatal("expected error for invalid telegram chat ID")
	}
}
