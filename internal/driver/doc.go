// Package driver owns the recurring tick that polls a gate.Operation.
//
// Start runs the operation once on the caller's goroutine, so the first
// paint never waits for a period to elapse, and then once per period on a
// single background goroutine until the returned Handle is stopped or the
// context is cancelled.
//
// SCHEDULING:
//
// There is exactly one tick producer per Handle. A tick runs to completion,
// including every Handler it triggers, before the next tick is considered.
// A slow tick delays the next one; ticks are never run concurrently.
//
// FAILURE:
//
// A failing tick (an error or a recovered panic) is reported to the error
// sink and counted, and the schedule continues. Fail-fast inside one tick is
// the Group's business; the Driver only decides that one bad tick does not
// stop the clock.
package driver
