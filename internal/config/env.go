package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides reads configuration values from environment variables and
// overrides fields in the provided Config. Returns an error if parsing fails.
//
// Environment variables supported:
// - TOWNCRIER_NOTIFY_TIMEOUT (duration, e.g. "30s")
// - TOWNCRIER_SLACK_WEBHOOK / TOWNCRIER_TEAMS_WEBHOOK (string)
// - TOWNCRIER_DISCORD_TOKEN / TOWNCRIER_DISCORD_CHANNEL_ID (string)
// - TOWNCRIER_TELEGRAM_TOKEN / TOWNCRIER_TELEGRAM_CHAT_ID (string)
// - TOWNCRIER_MASTODON_SERVER / TOWNCRIER_MASTODON_TOKEN (string)
// - TOWNCRIER_EMAIL_* (host, port, user, pass, to, subject)
// - TOWNCRIER_GOTIFY_URL / TOWNCRIER_GOTIFY_TOKEN (string)
// - TOWNCRIER_PUSHOVER_USER / TOWNCRIER_PUSHOVER_TOKEN (string)
// - TOWNCRIER_APPRISE_URL / TOWNCRIER_GENERIC_WEBHOOK_URL (string)
// - TOWNCRIER_METRICS_ENABLED (bool) / TOWNCRIER_METRICS_PORT (int)
// - TOWNCRIER_INFLUX_URL / _TOKEN / _ORG / _BUCKET / _INTERVAL
func ApplyEnvOverrides(cfg *Config) error {
	if err := applyChannelEnv(cfg); err != nil {
		return err
	}
	if err := applyEmailEnv(cfg); err != nil {
		return err
	}
	if err := applyMetricsEnv(cfg); err != nil {
		return err
	}
	if err := applyInfluxEnv(cfg); err != nil {
		return err
	}
	if v := os.Getenv("TOWNCRIER_NOTIFY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOWNCRIER_NOTIFY_TIMEOUT: %w", err)
		}
		cfg.NotifyTimeout = d
	}
	return nil
}

// applyChannelEnv consolidates channel credential env parsing
func applyChannelEnv(cfg *Config) error {
	setString("TOWNCRIER_SLACK_WEBHOOK", &cfg.SlackWebhook)
	setString("TOWNCRIER_TEAMS_WEBHOOK", &cfg.TeamsWebhook)
	setString("TOWNCRIER_DISCORD_TOKEN", &cfg.DiscordToken)
	setString("TOWNCRIER_DISCORD_CHANNEL_ID", &cfg.DiscordChannelID)
	setString("TOWNCRIER_TELEGRAM_TOKEN", &cfg.TelegramToken)
	setString("TOWNCRIER_TELEGRAM_CHAT_ID", &cfg.TelegramChatID)
	setString("TOWNCRIER_MASTODON_SERVER", &cfg.MastodonServer)
	setString("TOWNCRIER_MASTODON_TOKEN", &cfg.MastodonToken)
	setString("TOWNCRIER_GOTIFY_URL", &cfg.GotifyURL)
	setString("TOWNCRIER_GOTIFY_TOKEN", &cfg.GotifyToken)
	setString("TOWNCRIER_PUSHOVER_USER", &cfg.PushoverUser)
	setString("TOWNCRIER_PUSHOVER_TOKEN", &cfg.PushoverToken)
	setString("TOWNCRIER_APPRISE_URL", &cfg.AppriseURL)
	setString("TOWNCRIER_GENERIC_WEBHOOK_URL", &cfg.GenericWebhookURL)
	return nil
}

// applyEmailEnv consolidates email-related env parsing
func applyEmailEnv(cfg *Config) error {
	setString("TOWNCRIER_EMAIL_HOST", &cfg.EmailHost)
	setString("TOWNCRIER_EMAIL_USER", &cfg.EmailUser)
	setString("TOWNCRIER_EMAIL_PASS", &cfg.EmailPass)
	setString("TOWNCRIER_EMAIL_SUBJECT", &cfg.EmailSubject)
	if v := os.Getenv("TOWNCRIER_EMAIL_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TOWNCRIER_EMAIL_PORT: %w", err)
		}
		cfg.EmailPort = p
	}
	if v := os.Getenv("TOWNCRIER_EMAIL_TO"); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.EmailTo = parts
	}
	return nil
}

// applyMetricsEnv consolidates metrics-related env parsing
func applyMetricsEnv(cfg *Config) error {
	if err := setBoolEnv("TOWNCRIER_METRICS_ENABLED", func(b bool) { cfg.MetricsEnabled = b }); err != nil {
		return err
	}
	if v := os.Getenv("TOWNCRIER_METRICS_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TOWNCRIER_METRICS_PORT: %w", err)
		}
		cfg.MetricsPort = p
	}
	return nil
}

// applyInfluxEnv consolidates Influx-related env parsing
func applyInfluxEnv(cfg *Config) error {
	setString("TOWNCRIER_INFLUX_URL", &cfg.InfluxURL)
	setString("TOWNCRIER_INFLUX_TOKEN", &cfg.InfluxToken)
	setString("TOWNCRIER_INFLUX_ORG", &cfg.InfluxOrg)
	setString("TOWNCRIER_INFLUX_BUCKET", &cfg.InfluxBucket)
	if v := os.Getenv("TOWNCRIER_INFLUX_INTERVAL"); v != "" {
		dur, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOWNCRIER_INFLUX_INTERVAL: %w", err)
		}
		cfg.InfluxInterval = dur
	}
	return nil
}

// setString copies a non-empty env value into dst
func setString(env string, dst *string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// setBoolEnv is a small helper to parse boolean environment variables
func setBoolEnv(env string, setter func(bool)) error {
	if v := os.Getenv(env); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
		setter(b)
	}
	return nil
}
