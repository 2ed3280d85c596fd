// Package gate implements change-gated notification for polled values.
//
// A Gate wraps a pure Sampler and a Handler. Each Run re-samples the input
// and calls the Handler only when the sampled value differs from the last
// value the Gate dispatched, or on the very first Run. Gates are joined into
// a Group that fans one input out to every Gate in a fixed order.
//
// # Equality
//
// Sampled values are constrained to comparable types and compared with ==.
// For the bool and string values the widget samples this is value equality:
// two formatted strings with identical text are "unchanged" no matter where
// they were allocated.
//
// # Failure
//
// A Sampler error leaves the Gate's remembered value untouched. A Handler
// error is returned after the remembered value has been updated, so the same
// value is not re-dispatched on the next Run. A Group stops at the first
// failing Gate; later Gates do not run for that input.
//
// Gates hold unsynchronised state. A Gate or Group must only be driven from
// one goroutine at a time, which the driver package guarantees.
package gate
