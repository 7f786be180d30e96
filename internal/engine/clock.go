package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-dualclock/internal/config"
)

// Clock abstracts time.Now() to allow deterministic testing.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Ticker owns the periodic refresh of a single clock instance.
// It must be stopped when the clock is no longer displayed.
type Ticker struct {
	Clock    Clock
	Interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker creates a ticker firing at config.TickInterval.
func NewTicker(clock Clock) *Ticker {
	if clock == nil {
		clock = RealClock{}
	}
	return &Ticker{
		Clock:    clock,
		Interval: config.TickInterval,
	}
}

// Start invokes fn immediately, then once per interval, until Stop is called
// or ctx is cancelled. Calling Start on a running ticker does nothing.
func (t *Ticker) Start(ctx context.Context, fn func(time.Time)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done

	interval := t.Interval
	if interval <= 0 {
		interval = config.TickInterval
	}

	log := slog.With(config.LogKeyComponent, config.CompTicker)
	log.Debug(config.MsgTickerStart, config.LogKeyInterval, interval)

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		fn(t.Clock.Now())

		for {
			select {
			case <-ctx.Done():
				log.Debug(config.MsgTickerStop)
				return
			case <-ticker.C:
				fn(t.Clock.Now())
			}
		}
	}()
}

// Stop halts the ticker and waits for the pending callback to return.
// It is safe to call Stop more than once.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the ticker currently owns a goroutine.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}
