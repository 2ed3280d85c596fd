package driver_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/friday/internal/driver"
	"github.com/roach88/friday/internal/gate"
	"github.com/roach88/friday/internal/testutil"
)

var friday = time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)

// tickLog records the instants an operation was run with and signals each
// run on a channel so tests can wait for the Driver goroutine.
type tickLog struct {
	mu   sync.Mutex
	at   []time.Time
	runs chan time.Time
	fail func(n int) error
}

func newTickLog() *tickLog {
	return &tickLog{runs: make(chan time.Time, 64)}
}

func (l *tickLog) Run(t time.Time) error {
	l.mu.Lock()
	l.at = append(l.at, t)
	n := len(l.at)
	l.mu.Unlock()

	var err error
	if l.fail != nil {
		err = l.fail(n)
	}
	l.runs <- t
	return err
}

func (l *tickLog) instants() []time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]time.Time(nil), l.at...)
}

func (l *tickLog) await(t *testing.T) time.Time {
	t.Helper()
	select {
	case at := <-l.runs:
		return at
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tick")
		return time.Time{}
	}
}

func start(t *testing.T, op gate.Operation[time.Time], clock driver.Clock, opts ...driver.Option) *driver.Handle {
	t.Helper()
	opts = append([]driver.Option{driver.WithClock(clock), driver.WithRunID("run-test")}, opts...)
	h, err := driver.Start(context.Background(), op, time.Second, opts...)
	require.NoError(t, err)
	t.Cleanup(h.Stop)
	return h
}

func TestStart_FirstTickIsSynchronous(t *testing.T) {
	clock := testutil.NewManualClock(friday)
	log := newTickLog()

	h := start(t, log, clock)

	// No tick has been delivered yet, the first run already happened.
	assert.Equal(t, []time.Time{friday}, log.instants())
	assert.Equal(t, uint64(1), h.Ticks())
}

func TestStart_TicksUseCurrentInstant(t *testing.T) {
	clock := testutil.NewManualClock(friday)
	log := newTickLog()
	start(t, log, clock)
	log.await(t) // first, synchronous run

	for i := 1; i <= 3; i++ {
		require.True(t, clock.Tick())
		assert.Equal(t, friday.Add(time.Duration(i)*time.Second), log.await(t))
	}

	assert.Len(t, log.instants(), 4)
}

func TestStart_Validation(t *testing.T) {
	op := gate.OperationFunc[time.Time](func(time.Time) error { return nil })

	_, err := driver.Start(context.Background(), op, 0)
	assert.ErrorIs(t, err, driver.ErrInvalidPeriod)

	_, err = driver.Start(context.Background(), op, -time.Second)
	assert.ErrorIs(t, err, driver.ErrInvalidPeriod)

	_, err = driver.Start(context.Background(), nil, time.Second)
	assert.ErrorIs(t, err, driver.ErrNilOperation)
}

func TestHandle_StopIsIdempotent(t *testing.T) {
	clock := testutil.NewManualClock(friday)
	log := newTickLog()
	h := start(t, log, clock)

	require.True(t, clock.Tick())
	log.await(t)
	log.await(t)

	assert.NotPanics(t, func() {
		h.Stop()
		h.Stop()
	})

	assert.False(t, clock.Tick(), "no tick may be delivered after Stop")
	assert.Equal(t, uint64(2), h.Ticks())

	select {
	case <-h.Done():
	default:
		t.Fatal("Done must be closed after Stop")
	}
}

func TestHandle_ContextCancelStops(t *testing.T) {
	clock := testutil.NewManualClock(friday)
	log := newTickLog()

	ctx, cancel := context.WithCancel(context.Background())
	h, err := driver.Start(ctx, log, time.Second, driver.WithClock(clock))
	require.NoError(t, err)

	cancel()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("driver did not stop on context cancel")
	}

	assert.False(t, clock.Tick())
	h.Stop() // still safe
}

func TestTick_FailureDoesNotStopSchedule(t *testing.T) {
	clock := testutil.NewManualClock(friday)
	boom := errors.New("boom")
	log := newTickLog()
	log.fail = func(n int) error {
		if n == 2 {
			return boom
		}
		return nil
	}

	var (
		mu     sync.Mutex
		failed []*driver.TickError
	)
	start(t, log, clock, driver.WithErrorSink(func(te *driver.TickError) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, te)
	}))
	log.await(t)

	for i := 0; i < 3; i++ {
		require.True(t, clock.Tick())
		log.await(t)
	}
	// The sink is called after the op signals; a further tick orders it.
	require.True(t, clock.Tick())
	log.await(t)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, failed, 1)
	assert.Equal(t, uint64(2), failed[0].Tick)
	assert.Equal(t, "run-test", failed[0].RunID)
	assert.ErrorIs(t, failed[0], boom)
}

func TestTick_FirstTickFailureIsReported(t *testing.T) {
	clock := testutil.NewManualClock(friday)
	boom := errors.New("boom")

	var got *driver.TickError
	op := gate.OperationFunc[time.Time](func(time.Time) error { return boom })
	start(t, op, clock, driver.WithErrorSink(func(te *driver.TickError) { got = te }))

	// The first tick runs on this goroutine, so the sink has already run.
	require.NotNil(t, got)
	assert.Equal(t, uint64(1), got.Tick)
	assert.ErrorIs(t, got, boom)
}

func TestTick_PanicIsRecovered(t *testing.T) {
	clock := testutil.NewManualClock(friday)

	var calls atomic.Int32
	reported := make(chan *driver.TickError, 4)
	op := gate.OperationFunc[time.Time](func(time.Time) error {
		if calls.Add(1) == 2 {
			panic("handler exploded")
		}
		return nil
	})
	h := start(t, op, clock, driver.WithErrorSink(func(te *driver.TickError) { reported <- te }))

	require.True(t, clock.Tick())
	select {
	case te := <-reported:
		assert.True(t, driver.IsPanic(te))
		assert.Contains(t, te.Error(), "handler exploded")
	case <-time.After(2 * time.Second):
		t.Fatal("panic was not reported")
	}

	require.True(t, clock.Tick(), "schedule survives a panicking tick")
	h.Stop()
	assert.Equal(t, int32(3), calls.Load())
}

type countingObserver struct {
	ok, failed atomic.Int32
}

func (c *countingObserver) TickCompleted() { c.ok.Add(1) }
func (c *countingObserver) TickFailed()    { c.failed.Add(1) }

func TestTick_Observer(t *testing.T) {
	clock := testutil.NewManualClock(friday)
	obs := &countingObserver{}
	log := newTickLog()
	log.fail = func(n int) error {
		if n%2 == 0 {
			return errors.New("even")
		}
		return nil
	}

	h := start(t, log, clock, driver.WithObserver(obs), driver.WithErrorSink(func(*driver.TickError) {}))
	require.True(t, clock.Tick())
	require.True(t, clock.Tick())
	h.Stop()

	assert.Equal(t, int32(2), obs.ok.Load())
	assert.Equal(t, int32(1), obs.failed.Load())
}

func TestHandle_GeneratedRunID(t *testing.T) {
	op := gate.OperationFunc[time.Time](func(time.Time) error { return nil })
	h, err := driver.Start(context.Background(), op, time.Hour, driver.WithClock(testutil.NewManualClock(friday)))
	require.NoError(t, err)
	defer h.Stop()

	assert.Len(t, h.ID(), 36)
}

func TestStart_SystemClock(t *testing.T) {
	log := newTickLog()
	h, err := driver.Start(context.Background(), log, 5*time.Millisecond)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		log.await(t)
	}
	h.Stop()

	n := h.Ticks()
	assert.GreaterOrEqual(t, n, uint64(3))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, h.Ticks(), "no ticks after Stop")
}
