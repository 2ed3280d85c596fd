// Package harness replays widget scenarios against a recording document.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: midnight
//	description: "Crossing into Friday flips the answer once"
//	widget:
//	  zone: US/Pacific
//	ticks:
//	  - "2026-10-15T23:59:59-07:00"
//	  - "+1s"
//	assertions:
//	  - type: mutation_sequence
//	    node: primary
//	    values: ["No", "Yes"]
//
// The first tick is an RFC 3339 instant. Later ticks are either instants or
// offsets from the previous tick ("+500ms"). The widget block overrides the
// embedded site defaults.
//
// # Assertion Types
//
//   - mutation_count: the node was written exactly count times
//   - mutation_sequence: the node's written values, in order
//   - final_value: the node's last written value
//   - snapshot: the gates' last values (match, date, time; unset fields are
//     not checked)
//
// Nodes are image, primary, secondary and tertiary. An image's value is its
// source.
//
// # Deterministic Testing
//
// Ticks are fed straight to Widget.Run, so no wall clock or goroutine is
// involved and traces are stable for golden comparison.
package harness
