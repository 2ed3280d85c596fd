package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] tick %d %s %s %q\n", event.Seq, event.Tick, event.Node, event.Kind, event.Value)
	}
	return buf.String()
}

// nodeValues returns the values written to node, in order.
func nodeValues(trace []TraceEvent, node string) []string {
	var out []string
	for _, e := range trace {
		if e.Kind != KindAttach && e.Node == node {
			out = append(out, e.Value)
		}
	}
	return out
}

func assertMutationCount(trace []TraceEvent, a Assertion) error {
	got := len(nodeValues(trace, a.Node))
	if got == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertMutationCount,
		Expected: fmt.Sprintf("%s written %d time(s)", a.Node, a.Count),
		Actual:   fmt.Sprintf("%d time(s)", got),
		Trace:    trace,
	}
}

func assertMutationSequence(trace []TraceEvent, a Assertion) error {
	got := nodeValues(trace, a.Node)
	if slices.Equal(got, a.Values) {
		return nil
	}
	return &AssertionError{
		Type:     AssertMutationSequence,
		Expected: fmt.Sprintf("%s values %q", a.Node, a.Values),
		Actual:   fmt.Sprintf("%q", got),
		Trace:    trace,
	}
}

func assertFinalValue(trace []TraceEvent, a Assertion) error {
	got := nodeValues(trace, a.Node)
	if len(got) > 0 && got[len(got)-1] == a.Value {
		return nil
	}
	actual := "never written"
	if len(got) > 0 {
		actual = fmt.Sprintf("%q", got[len(got)-1])
	}
	return &AssertionError{
		Type:     AssertFinalValue,
		Expected: fmt.Sprintf("%s ends as %q", a.Node, a.Value),
		Actual:   actual,
		Trace:    trace,
	}
}

func assertSnapshot(result *Result, a Assertion) error {
	if !result.Settled {
		return &AssertionError{
			Type:     AssertSnapshot,
			Expected: "every gate dispatched",
			Actual:   "no snapshot",
			Trace:    result.Trace,
		}
	}

	s := result.Snapshot
	var diffs []string
	if a.Match != nil && *a.Match != s.Match {
		diffs = append(diffs, fmt.Sprintf("match %v, got %v", *a.Match, s.Match))
	}
	if a.Date != "" && a.Date != s.Date {
		diffs = append(diffs, fmt.Sprintf("date %q, got %q", a.Date, s.Date))
	}
	if a.Time != "" && a.Time != s.Time {
		diffs = append(diffs, fmt.Sprintf("time %q, got %q", a.Time, s.Time))
	}
	if len(diffs) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertSnapshot,
		Expected: strings.Join(diffs, "; "),
		Actual:   fmt.Sprintf("%+v", s),
		Trace:    result.Trace,
	}
}

// EvaluateAssertions checks every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertMutationCount:
			err = assertMutationCount(result.Trace, a)
		case AssertMutationSequence:
			err = assertMutationSequence(result.Trace, a)
		case AssertFinalValue:
			err = assertFinalValue(result.Trace, a)
		case AssertSnapshot:
			err = assertSnapshot(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}
