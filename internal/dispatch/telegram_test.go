package dispatch

import "testing"

func TestNewTelegramChatID(t *testing.T) {
	if _, err := NewTelegram("tok", "not-a-number", true); err == nil {
		t.Fatal("expected error for non-numeric chat ID")
	}

	tg, err := NewTelegram("tok", "-100123456", true)
	if err != nil {
		t.Fatalf("NewTelegram failed: %v", err)
	}
	if tg.Name() != "Telegram" {
		t.Fatalf("unexpected name: %s", tg.Name())
	}
}

func TestNewDiscord(t *testing.T) {
	d, err := NewDiscord("tok", "123")
	if err != nil {
		t.Fatalf("NewDiscord failed: %v", err)
	}
	if d.Name() != "Discord" {
		t.Fatalf("unexpected name: %s", d.Name())
	}
}
