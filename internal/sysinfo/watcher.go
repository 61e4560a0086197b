package sysinfo

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// defaultInterval backs Watchers constructed with a non-positive
// interval; time.NewTicker panics on those.
const defaultInterval = 5 * time.Second

// Watcher refreshes telemetry snapshots on a fixed interval and hands
// each one to a callback. It drives the diagnostics panel's polling
// without the panel owning a timer.
type Watcher struct {
	collector *Collector
	interval  time.Duration
	log       *zap.Logger

	onSnapshot func(Snapshot)
}

// NewWatcher creates a Watcher around the given collector. A
// non-positive interval falls back to a 5-second default.
func NewWatcher(collector *Collector, interval time.Duration, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Watcher{
		collector: collector,
		interval:  interval,
		log:       log,
	}
}

// OnSnapshot sets the callback invoked with every refreshed snapshot.
// Set it before Start; the callback runs on the watcher's goroutine.
func (w *Watcher) OnSnapshot(fn func(Snapshot)) {
	w.onSnapshot = fn
}

// Start collects immediately, then on every tick, until the context is
// cancelled. It blocks; run it in its own goroutine when the caller
// has other work.
func (w *Watcher) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Telemetry watcher stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *Watcher) refresh(ctx context.Context) {
	snap := w.collector.Collect(ctx)
	w.log.Debug("Collected telemetry snapshot", zap.String("host", snap.Host))
	if w.onSnapshot != nil {
		w.onSnapshot(snap)
	}
}
