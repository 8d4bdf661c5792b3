package metrics

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/towncrier/towncrier/internal/logging"
)

// StartInfluxPusher starts a background loop to push metrics to InfluxDB.
func StartInfluxPusher(ctx context.Context, url, token, org, bucket string, interval time.Duration) {
	if url == "" || bucket == "" {
		return
	}
	logging.Get().Info().Str("url", url).Dur("interval", interval).Msg("starting influxdb pusher")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	client := &http.Client{Timeout: 5 * time.Second}
	writeURL := fmt.Sprintf("%s/api/v2/write?org=%s&bucket=%s&precision=s", strings.TrimRight(url, "/"), org, bucket)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pushToInflux(ctx, client, writeURL, token)
		}
	}
}

func pushToInflux(ctx context.Context, client *http.Client, url, token string) {
	s := GetSnapshot()

	// Influx line protocol: measurement field=value,... timestamp
	line := fmt.Sprintf(
		"towncrier broadcasts=%di,sends_success=%di,sends_failure=%di,last_broadcast=%di %d",
		s.Broadcasts, s.SendsSuccess, s.SendsFailure, s.LastBroadcast, time.Now().Unix(),
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader([]byte(line)))
	if err != nil {
		logging.Get().Error().Err(err).Msg("influxdb request creation failed")
		return
	}
	req.Header.Set("Authorization", "Token "+token)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := client.Do(req)
	if err != nil {
		logging.Get().Error().Err(err).Msg("influxdb push failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logging.Get().Warn().Int("status", resp.StatusCode).Msg("influxdb rejected metrics")
	}
}
