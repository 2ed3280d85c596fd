package testutil

import (
	"sync"
	"time"

	"github.com/roach88/friday/internal/driver"
)

// ManualClock is a driver.Clock whose time only moves when a test says so.
//
// Tick advances the clock by the newest ticker's period and delivers the new
// instant on that ticker, blocking until the Driver receives it. A Driver
// that has stopped never blocks Tick.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*ManualTicker
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current frozen instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t without delivering a tick.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// NewTicker implements driver.Clock.
func (c *ManualClock) NewTicker(d time.Duration) driver.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &ManualTicker{
		ch:      make(chan time.Time),
		period:  d,
		stopped: make(chan struct{}),
	}
	c.tickers = append(c.tickers, t)
	return t
}

// Tick advances the clock by one period of the newest ticker and delivers
// the tick. Returns false if there is no ticker or it has been stopped.
func (c *ManualClock) Tick() bool {
	c.mu.Lock()
	if len(c.tickers) == 0 {
		c.mu.Unlock()
		return false
	}
	t := c.tickers[len(c.tickers)-1]
	select {
	case <-t.stopped:
		c.mu.Unlock()
		return false
	default:
	}
	c.now = c.now.Add(t.period)
	now := c.now
	c.mu.Unlock()

	select {
	case t.ch <- now:
		return true
	case <-t.stopped:
		return false
	}
}

// ManualTicker is the driver.Ticker handed out by ManualClock.
type ManualTicker struct {
	ch       chan time.Time
	period   time.Duration
	stopOnce sync.Once
	stopped  chan struct{}
}

// C implements driver.Ticker.
func (t *ManualTicker) C() <-chan time.Time {
	return t.ch
}

// Stop implements driver.Ticker. Safe to call more than once.
func (t *ManualTicker) Stop() {
	t.stopOnce.Do(func() { close(t.stopped) })
}

// Stopped reports whether Stop has been called.
func (t *ManualTicker) Stopped() bool {
	select {
	case <-t.stopped:
		return true
	default:
		return false
	}
}
