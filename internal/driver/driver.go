package driver

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roach88/friday/internal/gate"
)

// ErrorSink receives every failed tick.
type ErrorSink func(*TickError)

// TickObserver is notified about every tick. metrics.Recorder implements it.
type TickObserver interface {
	TickCompleted()
	TickFailed()
}

// Option configures Start.
type Option func(*config)

type config struct {
	clock    Clock
	logger   zerolog.Logger
	sink     ErrorSink
	observer TickObserver
	runID    string
}

// WithClock replaces SystemClock.
func WithClock(c Clock) Option {
	return func(cfg *config) { cfg.clock = c }
}

// WithLogger sets the logger used for lifecycle events and, unless
// WithErrorSink is given, for tick failures.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) { cfg.logger = l }
}

// WithErrorSink routes tick failures to sink instead of the logger.
func WithErrorSink(sink ErrorSink) Option {
	return func(cfg *config) { cfg.sink = sink }
}

// WithObserver registers a TickObserver.
func WithObserver(o TickObserver) Option {
	return func(cfg *config) { cfg.observer = o }
}

// WithRunID overrides the generated UUIDv7 run id. Used by tests for stable
// log output.
func WithRunID(id string) Option {
	return func(cfg *config) { cfg.runID = id }
}

// Handle is the lifecycle handle of a running Driver.
//
// Thread-safety: Stop, Done, ID and Ticks are safe from any goroutine.
type Handle struct {
	op     gate.Operation[time.Time]
	cfg    config
	ticker Ticker

	ticks atomic.Uint64

	stopOnce sync.Once
	stop     chan struct{} // closed by Stop
	done     chan struct{} // closed when the loop has exited
}

// Start runs op once synchronously with clock.Now(), then once per period
// until the Handle is stopped or ctx is done.
//
// The returned Handle must be stopped to release the ticker; cancelling ctx
// also releases it.
func Start(ctx context.Context, op gate.Operation[time.Time], period time.Duration, opts ...Option) (*Handle, error) {
	if op == nil {
		return nil, ErrNilOperation
	}
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}

	cfg := config{
		clock:  SystemClock,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.Must(uuid.NewV7()).String()
	}

	h := &Handle{
		op:   op,
		cfg:  cfg,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	h.cfg.logger.Debug().
		Str("run_id", h.cfg.runID).
		Dur("period", period).
		Msg("driver starting")

	// First paint happens before anything is scheduled.
	h.tick()

	h.ticker = cfg.clock.NewTicker(period)
	go h.loop(ctx)

	return h, nil
}

// loop is the single tick producer. Only this goroutine runs op after Start
// has returned.
func (h *Handle) loop(ctx context.Context) {
	defer close(h.done)
	defer h.ticker.Stop()

	for {
		select {
		case <-h.stop:
			h.cfg.logger.Debug().Str("run_id", h.cfg.runID).Msg("driver stopped")
			return
		case <-ctx.Done():
			h.cfg.logger.Debug().Str("run_id", h.cfg.runID).Err(ctx.Err()).Msg("driver stopped: context done")
			return
		case <-h.ticker.C():
			// A Stop racing with a tick wins.
			select {
			case <-h.stop:
				return
			default:
			}
			h.tick()
		}
	}
}

// tick runs op once and reports any failure. It never propagates a failure
// to the schedule.
func (h *Handle) tick() {
	n := h.ticks.Add(1)

	err := h.runOp()
	if err == nil {
		if h.cfg.observer != nil {
			h.cfg.observer.TickCompleted()
		}
		return
	}

	if h.cfg.observer != nil {
		h.cfg.observer.TickFailed()
	}
	h.report(&TickError{RunID: h.cfg.runID, Tick: n, Err: err})
}

func (h *Handle) runOp() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return h.op.Run(h.cfg.clock.Now())
}

func (h *Handle) report(te *TickError) {
	if h.cfg.sink != nil {
		h.cfg.sink(te)
		return
	}
	h.cfg.logger.Error().
		Err(te.Err).
		Str("run_id", te.RunID).
		Uint64("tick", te.Tick).
		Msg("tick failed")
}

// Stop prevents any further tick and waits for an in-flight tick to finish.
// Calling Stop more than once is a no-op.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
	<-h.done
}

// Done is closed once the Driver has stopped, whether by Stop or by context
// cancellation.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// ID returns the run id used in log output.
func (h *Handle) ID() string {
	return h.cfg.runID
}

// Ticks returns the number of ticks run so far, including the first.
func (h *Handle) Ticks() uint64 {
	return h.ticks.Load()
}
