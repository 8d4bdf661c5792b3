// Package runner drives pipe mode: every line read from the input is
// broadcast to all registered channels.
package runner

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/towncrier/towncrier/internal/config"
	"github.com/towncrier/towncrier/internal/dispatch"
	"github.com/towncrier/towncrier/internal/logging"
)

// Runner consumes lines from an input stream and broadcasts each one.
// Lines are fire-and-forget: a failed broadcast is logged by the dispatcher
// and never retried or queued.
type Runner struct {
	cfg    *config.Config
	disp   *dispatch.Dispatcher
	in     io.Reader
	quit   chan struct{}
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New returns a runner reading from in.
func New(cfg *config.Config, disp *dispatch.Dispatcher, in io.Reader) *Runner {
	return &Runner{
		cfg:  cfg,
		disp: disp,
		in:   in,
		quit: make(chan struct{}),
	}
}

// Start reads lines until the input is exhausted or Stop is called. Blank
// lines are skipped. Each line is broadcast under the configured timeout.
func (r *Runner) Start() {
	logging.Get().Info().Int("channels", r.disp.Len()).Msg("starting pipe mode")
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-r.quit:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logging.Get().Error().Err(err).Msg("input read failed")
		}
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				logging.Get().Info().Msg("input exhausted")
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			r.wg.Add(1)
			r.Broadcast(ctx, line)
			r.wg.Done()
		case <-r.quit:
			logging.Get().Info().Msg("stopping runner")
			return
		}
	}
}

// Broadcast delivers one message under the configured per-broadcast timeout.
func (r *Runner) Broadcast(ctx context.Context, message string) {
	if r.cfg.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.NotifyTimeout)
		defer cancel()
	}
	r.disp.NotifyAll(ctx, message)
}

// Stop signals the runner to exit and waits for an in-flight broadcast to
// finish, or until the provided context is cancelled.
func (r *Runner) Stop(ctx context.Context) {
	if r.cancel != nil {
		r.cancel()
	}
	close(r.quit)

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Get().Info().Msg("runner stopped")
	case <-ctx.Done():
		logging.Get().Warn().Msg("shutdown timeout exceeded, broadcast may be incomplete")
	}
}
