package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/s41290/gh-dispatch/internal/github"
	"github.com/s41290/gh-dispatch/pkg/logger"
)

const (
	// DefaultInterval is the pause between polling cycles.
	DefaultInterval = 5 * time.Second
	// DefaultMaxWait is the wall-clock ceiling on a watch session,
	// 360 intervals at the default interval.
	DefaultMaxWait = 30 * time.Minute
)

// ErrTimeout is returned when the run has not completed within the maximum
// wait. It is distinct from fetch failures so callers can tell "still
// running, gave up watching" from "watching itself broke".
var ErrTimeout = errors.New("timed out waiting for workflow completion")

// Options parameterizes a watch session.
type Options struct {
	Owner    string
	Repo     string
	RunID    int64
	Interval time.Duration // default DefaultInterval
	MaxWait  time.Duration // default 360x the interval
	Logger   *logger.Logger
}

// Watcher drives repeated polling cycles until the run completes, the
// maximum wait elapses, or a fetch fails. One Watcher serves one session.
type Watcher struct {
	client Client
	sink   Sink
	opts   Options

	// Injected for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a watcher. A nil sink discards events.
func New(client Client, sink Sink, opts Options) *Watcher {
	if sink == nil {
		sink = DiscardSink{}
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = 360 * opts.Interval
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return &Watcher{
		client: client,
		sink:   sink,
		opts:   opts,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Watch polls the run until it completes and returns the final run record.
// Events are forwarded to the sink as each cycle produces them, so partial
// progress is visible even when a later fetch fails. Fetch errors and
// context cancellation abort the session immediately; there is no retry at
// this layer.
func (w *Watcher) Watch(ctx context.Context) (*github.Run, error) {
	poller := NewPoller(w.client, w.opts.Owner, w.opts.Repo, w.opts.RunID)
	start := w.now()

	for cycle := 1; ; cycle++ {
		if elapsed := w.now().Sub(start); elapsed > w.opts.MaxWait {
			return nil, fmt.Errorf("%w (%s)", ErrTimeout, w.opts.MaxWait)
		}

		run, events, err := poller.PollOnce(ctx)
		for _, ev := range events {
			w.sink.Render(ev)
		}
		if err != nil {
			return nil, fmt.Errorf("watching run %d: %w", w.opts.RunID, err)
		}

		w.opts.Logger.Debug("poll cycle",
			"cycle", cycle, "run", w.opts.RunID, "status", run.Status, "events", len(events))

		if run.Status == github.StatusCompleted {
			// Handles the edge where a job completed between the jobs fetch
			// and the run fetch: the sink settles every job line once.
			w.sink.Flush()
			return run, nil
		}

		if err := w.sleep(ctx, w.opts.Interval); err != nil {
			return nil, fmt.Errorf("watching run %d: %w", w.opts.RunID, err)
		}
	}
}

// sleepContext pauses for d or until ctx is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
