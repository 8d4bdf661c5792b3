// Package config holds runtime configuration for towncrier.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes which channels to construct and how the process behaves.
// Every channel section is optional; a channel is only registered when its
// required credentials are present.
type Config struct {
	// NotifyTimeout bounds a single broadcast (all channels combined).
	NotifyTimeout time.Duration `json:"notify_timeout" yaml:"notify_timeout"`

	// Chat webhooks
	SlackWebhook   string `json:"slack_webhook" yaml:"slack_webhook"`
	TeamsWebhook   string `json:"teams_webhook" yaml:"teams_webhook"`
	MastodonServer string `json:"mastodon_server" yaml:"mastodon_server"`
	MastodonToken  string `json:"mastodon_token" yaml:"mastodon_token"`

	// Discord bot (gateway credentials, not a webhook)
	DiscordToken     string `json:"discord_token" yaml:"discord_token"`
	DiscordChannelID string `json:"discord_channel_id" yaml:"discord_channel_id"`

	// Telegram bot
	TelegramToken  string `json:"telegram_token" yaml:"telegram_token"`
	TelegramChatID string `json:"telegram_chat_id" yaml:"telegram_chat_id"`

	// SMTP
	EmailHost    string   `json:"email_host" yaml:"email_host"`
	EmailPort    int      `json:"email_port" yaml:"email_port"`
	EmailUser    string   `json:"email_user" yaml:"email_user"`
	EmailPass    string   `json:"email_pass" yaml:"email_pass"`
	EmailTo      []string `json:"email_to" yaml:"email_to"`
	EmailSubject string   `json:"email_subject" yaml:"email_subject"`

	// Push and generic endpoints
	GotifyURL         string `json:"gotify_url" yaml:"gotify_url"`
	GotifyToken       string `json:"gotify_token" yaml:"gotify_token"`
	PushoverUser      string `json:"pushover_user" yaml:"pushover_user"`
	PushoverToken     string `json:"pushover_token" yaml:"pushover_token"`
	AppriseURL        string `json:"apprise_url" yaml:"apprise_url"`
	GenericWebhookURL string `json:"generic_webhook_url" yaml:"generic_webhook_url"`

	// Metrics
	MetricsEnabled bool `json:"metrics_enabled" yaml:"metrics_enabled"`
	MetricsPort    int  `json:"metrics_port" yaml:"metrics_port"`

	// InfluxDB (push)
	InfluxURL      string        `json:"influx_url" yaml:"influx_url"`
	InfluxToken    string        `json:"influx_token" yaml:"influx_token"`
	InfluxOrg      string        `json:"influx_org" yaml:"influx_org"`
	InfluxBucket   string        `json:"influx_bucket" yaml:"influx_bucket"`
	InfluxInterval time.Duration `json:"influx_interval" yaml:"influx_interval"`
}

// DefaultConfig returns a sane default configuration.
func DefaultConfig() *Config {
	return &Config{
		NotifyTimeout: 30 * time.Second,
		EmailSubject:  "towncrier notification",
		EmailPort:     25,

		// Metrics defaults (opt-in)
		MetricsEnabled: false,
		MetricsPort:    9090,

		InfluxInterval: 1 * time.Minute,
	}
}

// Validate returns a list of non-fatal configuration warnings, such as
// incomplete channel credential combinations.
func (c *Config) Validate() []string {
	var warnings []string
	checks := []struct {
		cond bool
		msg  string
	}{
		{c.GotifyURL != "" && c.GotifyToken == "", "gotify URL provided but token is missing"},
		{c.GotifyToken != "" && c.GotifyURL == "", "gotify token provided but URL is missing"},
		{c.PushoverUser != "" && c.PushoverToken == "", "pushover user provided but token is missing"},
		{c.PushoverToken != "" && c.PushoverUser == "", "pushover token provided but user is missing"},
		{c.EmailHost != "" && len(c.EmailTo) == 0, "email host provided but no recipients configured (email_to)"},
		{c.EmailHost == "" && len(c.EmailTo) > 0, "email recipients configured but email host is empty"},
		{c.DiscordToken != "" && c.DiscordChannelID == "", "discord token provided but channel ID is missing"},
		{c.DiscordChannelID != "" && c.DiscordToken == "", "discord channel ID provided but token is missing"},
		{c.TelegramToken != "" && c.TelegramChatID == "", "telegram token provided but chat ID is missing"},
		{c.TelegramChatID != "" && c.TelegramToken == "", "telegram chat ID provided but token is missing"},
		{c.MastodonServer != "" && c.MastodonToken == "", "mastodon server provided but access token is missing"},
	}
	for _, ch := range checks {
		if ch.cond {
			warnings = append(warnings, ch.msg)
		}
	}
	return warnings
}

// LoadConfigFromFile loads config from a YAML/JSON file on top of defaults.
func LoadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
