package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/towncrier/towncrier/internal/config"
	"github.com/towncrier/towncrier/internal/dispatch"
	"github.com/towncrier/towncrier/internal/logging"
	"github.com/towncrier/towncrier/internal/metrics"
	"github.com/towncrier/towncrier/internal/runner"
)

func main() {
	cfgFile := flag.String("config", "", "Path to config file")
	message := flag.String("message", "", "Broadcast a single message and exit")
	stdinMode := flag.Bool("stdin", false, "Read messages from stdin and broadcast each line")
	dryRun := flag.Bool("dry-run", false, "List the channels that would be notified and exit")
	timeout := flag.Duration("timeout", 0, "Per-broadcast timeout (overrides config)")
	flag.Parse()

	cfg := config.DefaultConfig()
	// load from file if provided (overrides defaults)
	if *cfgFile != "" {
		c, err := config.LoadConfigFromFile(*cfgFile)
		if err != nil {
			log.Fatalf("failed loading config: %v", err)
		}
		cfg = c
	}

	// apply env var overrides (overrides file/defaults)
	if err := config.ApplyEnvOverrides(cfg); err != nil {
		log.Fatalf("invalid environment configuration: %v", err)
	}

	// CLI flags have highest precedence
	if *timeout > 0 {
		cfg.NotifyTimeout = *timeout
	}

	cleanup := initLogging()
	defer cleanup()

	for _, w := range cfg.Validate() {
		logging.Get().Warn().Msg(w)
	}

	initMetricsAndInflux(cfg)

	disp, err := buildDispatcher(cfg)
	if err != nil {
		logging.Get().Fatal().Err(err).Msg("failed to construct channels")
	}
	defer disp.CloseAll()

	if disp.Len() == 0 {
		logging.Get().Warn().Msg("no channels configured; broadcasts will reach nobody")
	}

	switch {
	case *dryRun:
		for _, name := range disp.Names() {
			fmt.Println(name)
		}
	case *message != "":
		broadcastOnce(cfg, disp, *message)
	case *stdinMode:
		runAndWait(cfg, disp)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// initLogging initializes the log subsystem from env and returns a cleanup func
func initLogging() func() {
	logLevel := os.Getenv("TOWNCRIER_LOG_LEVEL")
	logFile := os.Getenv("TOWNCRIER_LOG_FILE")
	cleanup, err := logging.Init(logFile, logLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	return cleanup
}

// initMetricsAndInflux starts the optional metrics server and Influx pusher
func initMetricsAndInflux(cfg *config.Config) {
	if cfg.MetricsEnabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.PromHandler())
			mux.Handle("/status", metrics.JSONHandler())
			addr := fmt.Sprintf(":%d", cfg.MetricsPort)
			logging.Get().Info().Str("addr", addr).Msg("starting metrics server")
			_ = http.ListenAndServe(addr, mux)
		}()
	}
	if cfg.InfluxURL != "" {
		go metrics.StartInfluxPusher(context.Background(), cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket, cfg.InfluxInterval)
	}
}

// buildDispatcher registers one channel per configured credential set, in a
// fixed order so repeated runs broadcast in the same sequence.
func buildDispatcher(cfg *config.Config) (*dispatch.Dispatcher, error) {
	d := dispatch.NewDispatcher()
	regs := []struct {
		cond bool
		add  func() error
	}{
		{cfg.SlackWebhook != "", func() error { d.Register(&dispatch.Slack{WebhookURL: cfg.SlackWebhook}); return nil }},
		{cfg.TeamsWebhook != "", func() error { d.Register(&dispatch.Teams{WebhookURL: cfg.TeamsWebhook}); return nil }},
		{cfg.MastodonServer != "" && cfg.MastodonToken != "", func() error {
			d.Register(&dispatch.Mastodon{ServerURL: cfg.MastodonServer, AccessToken: cfg.MastodonToken})
			return nil
		}},
		{cfg.DiscordToken != "" && cfg.DiscordChannelID != "", func() error {
			ch, err := dispatch.NewDiscord(cfg.DiscordToken, cfg.DiscordChannelID)
			if err != nil {
				return err
			}
			d.Register(ch)
			return nil
		}},
		{cfg.TelegramToken != "" && cfg.TelegramChatID != "", func() error {
			ch, err := dispatch.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, false)
			if err != nil {
				return err
			}
			d.Register(ch)
			return nil
		}},
		{cfg.EmailHost != "" && len(cfg.EmailTo) > 0, func() error {
			d.Register(&dispatch.Email{
				Host: cfg.EmailHost, Port: cfg.EmailPort,
				User: cfg.EmailUser, Pass: cfg.EmailPass,
				To: cfg.EmailTo, Subject: cfg.EmailSubject,
			})
			return nil
		}},
		{cfg.GotifyURL != "" && cfg.GotifyToken != "", func() error {
			d.Register(&dispatch.Gotify{ServerURL: cfg.GotifyURL, Token: cfg.GotifyToken})
			return nil
		}},
		{cfg.PushoverUser != "" && cfg.PushoverToken != "", func() error {
			d.Register(&dispatch.Pushover{UserKey: cfg.PushoverUser, APIToken: cfg.PushoverToken})
			return nil
		}},
		{cfg.AppriseURL != "", func() error { d.Register(&dispatch.Apprise{APIURL: cfg.AppriseURL}); return nil }},
		{cfg.GenericWebhookURL != "", func() error { d.Register(&dispatch.Generic{WebhookURL: cfg.GenericWebhookURL}); return nil }},
	}
	for _, reg := range regs {
		if !reg.cond {
			continue
		}
		if err := reg.add(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// broadcastOnce sends a single message under the configured timeout
func broadcastOnce(cfg *config.Config, disp *dispatch.Dispatcher, message string) {
	ctx := context.Background()
	if cfg.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.NotifyTimeout)
		defer cancel()
	}
	disp.NotifyAll(ctx, message)
}

// runAndWait starts pipe mode and waits for EOF or a shutdown signal
func runAndWait(cfg *config.Config, disp *dispatch.Dispatcher) {
	r := runner.New(cfg, disp, os.Stdin)

	done := make(chan struct{})
	go func() {
		r.Start()
		close(done)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
		return
	case <-sig:
	}

	logging.Get().Info().Msg("shutdown signal received, waiting for in-flight broadcast")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.Stop(shutdownCtx)
}
