package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/utils/errutil"
	"github.com/secmon-lab/riskboard/pkg/utils/logging"
)

// IdleSessionStore is the part of a session repository the sweeper needs
type IdleSessionStore interface {
	DeleteIdle(ctx context.Context, before time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

// SessionSweeper evicts dashboard sessions that were not accessed within ttl.
// Evicting a session drops its loaded data; the viewer's next page load
// starts a fresh one.
type SessionSweeper struct {
	store    IdleSessionStore
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

type SweeperOption func(*SessionSweeper)

// WithSweeperClock replaces the time source, for tests
func WithSweeperClock(now func() time.Time) SweeperOption {
	return func(w *SessionSweeper) {
		w.now = now
	}
}

// NewSessionSweeper creates a new sweeper. It does nothing until Start.
func NewSessionSweeper(store IdleSessionStore, ttl, interval time.Duration, opts ...SweeperOption) *SessionSweeper {
	w := &SessionSweeper{
		store:    store,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the sweep loop in a background goroutine
func (w *SessionSweeper) Start(ctx context.Context) error {
	if w.ttl <= 0 || w.interval <= 0 {
		return goerr.New("session sweeper requires positive ttl and interval",
			goerr.V("ttl", w.ttl),
			goerr.V("interval", w.interval),
		)
	}

	logging.Default().Info("session sweeper starting",
		"ttl", w.ttl.String(),
		"interval", w.interval.String())

	go w.run(ctx)
	return nil
}

// Stop signals the loop to stop and waits for it. It must only be called after a
// successful Start; calling it more than once is harmless.
func (w *SessionSweeper) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.doneCh
	logging.Default().Info("session sweeper stopped")
}

func (w *SessionSweeper) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil {
				errutil.Handle(ctx, err, "session sweep failed (will retry next interval)")
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("session sweeper context cancelled")
			return
		}
	}
}

// Sweep runs a single eviction cycle and returns the number of evicted sessions
func (w *SessionSweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := w.now().Add(-w.ttl)

	removed, err := w.store.DeleteIdle(ctx, cutoff)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete idle sessions", goerr.V("cutoff", cutoff))
	}

	if removed > 0 {
		remaining, err := w.store.Count(ctx)
		if err != nil {
			return removed, goerr.Wrap(err, "failed to count sessions")
		}
		logging.From(ctx).Info("idle sessions evicted",
			"removed", removed,
			"remaining", remaining)
	}

	return removed, nil
}
