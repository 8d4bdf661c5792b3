package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// --- Slack ---
type Slack struct {
	WebhookURL string
}

func (s *Slack) Name() string { return "Slack" }
func (s *Slack) Notify(ctx context.Context, message string) error {
	payload := map[string]string{"text": message}
	return postJSON(ctx, s.WebhookURL, payload)
}

// --- Teams ---
type Teams struct{ WebhookURL string }

func (t *Teams) Name() string { return "Teams" }
func (t *Teams) Notify(ctx context.Context, message string) error {
	payload := map[string]interface{}{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": "0076D7",
		"summary":    "towncrier",
		"sections":   []map[string]string{{"activityTitle": "towncrier", "activityText": message}},
	}
	return postJSON(ctx, t.WebhookURL, payload)
}

// --- Mastodon ---
type Mastodon struct{ ServerURL, AccessToken string }

func (m *Mastodon) Name() string { return "Mastodon" }
func (m *Mastodon) Notify(ctx context.Context, message string) error {
	endpoint := fmt.Sprintf("%s/api/v1/statuses", strings.TrimRight(m.ServerURL, "/"))
	payload := map[string]string{"status": message, "visibility": "private"}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.AccessToken)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mastodon api %d", resp.StatusCode)
	}
	return nil
}
