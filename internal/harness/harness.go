package harness

import (
	"fmt"

	"github.com/roach88/friday/internal/widget"
)

// Run executes a scenario: the first tick paints before the nodes are
// attached, then every later tick runs against the attached nodes.
// A returned error means the scenario could not be set up; tick failures
// and assertion failures are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	cfg, err := scenario.WidgetConfig()
	if err != nil {
		return nil, fmt.Errorf("widget config: %w", err)
	}
	times, err := scenario.Times()
	if err != nil {
		return nil, err
	}

	rec := NewRecording()
	w, err := widget.New(cfg, rec)
	if err != nil {
		return nil, fmt.Errorf("widget: %w", err)
	}

	result := NewResult()
	for i, t := range times {
		rec.SetTick(i)
		if err := w.Run(t); err != nil {
			result.AddError(fmt.Sprintf("tick %d (%s): %v", i, scenario.Ticks[i], err))
		}
		if i == 0 {
			if err := w.Mount(); err != nil {
				return nil, fmt.Errorf("mount: %w", err)
			}
		}
	}

	result.Trace = rec.Events()
	result.Snapshot, result.Settled = w.Snapshot()
	if !result.Settled {
		result.AddError("snapshot: a gate never dispatched")
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}
