// Package dispatch fans a single message out to every registered channel.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/towncrier/towncrier/internal/logging"
	"github.com/towncrier/towncrier/internal/metrics"
)

// Channel is the interface all delivery channels must implement. A channel
// that cannot support an operation simply does not implement it: channels
// holding an open session additionally implement io.Closer, and nothing else
// is ever required of a variant.
type Channel interface {
	Notify(ctx context.Context, message string) error
	Name() string
}

// Dispatcher holds an ordered collection of channels and broadcasts a
// message to all of them. Channels are delivered to in registration order.
// The dispatcher is fire-and-forget per channel: it does not retry, does not
// aggregate failures, and keeps no state between broadcasts.
type Dispatcher struct {
	channels []Channel
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{channels: make([]Channel, 0)}
}

// Register appends a channel to the broadcast sequence. Registering the same
// channel twice means it is notified twice; there is no deduplication and no
// removal. A nil channel is ignored.
func (d *Dispatcher) Register(c Channel) {
	if c != nil {
		d.channels = append(d.channels, c)
	}
}

// Len returns the number of registered channels.
func (d *Dispatcher) Len() int {
	return len(d.channels)
}

// Names returns the names of all registered channels in registration order.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.channels))
	for _, c := range d.channels {
		names = append(names, c.Name())
	}
	return names
}

// NotifyAll invokes Notify on every registered channel exactly once, in
// registration order. A failing channel is logged and counted; delivery
// continues with the remaining channels. With no channels registered this
// is a no-op.
func (d *Dispatcher) NotifyAll(ctx context.Context, message string) {
	if len(d.channels) == 0 {
		return
	}
	id := uuid.NewString()
	metrics.IncBroadcast()
	for _, c := range d.channels {
		start := time.Now()
		if err := c.Notify(ctx, message); err != nil {
			metrics.IncSendFailure(c.Name())
			logging.Get().Error().Err(err).Str("channel", c.Name()).Str("broadcast", id).Msg("channel delivery failed")
			continue
		}
		metrics.IncSendSuccess(c.Name())
		metrics.ObserveSendDuration(time.Since(start).Seconds())
		logging.Get().Debug().Str("channel", c.Name()).Str("broadcast", id).Msg("message delivered")
	}
	metrics.SetLastBroadcast(time.Now())
}

// CloseAll closes every registered channel that owns an open session. Only
// channels implementing io.Closer are touched.
func (d *Dispatcher) CloseAll() {
	for _, c := range d.channels {
		if cl, ok := c.(io.Closer); ok {
			if err := cl.Close(); err != nil {
				logging.Get().Warn().Err(err).Str("channel", c.Name()).Msg("channel close failed")
			}
		}
	}
}

// postJSON is a shared helper used by webhook-style channels
func postJSON(ctx context.Context, url string, data interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("api returned status %d", resp.StatusCode)
	}
	return nil
}
