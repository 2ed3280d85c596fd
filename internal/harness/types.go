package harness

import "github.com/roach88/friday/internal/widget"

// Event kinds.
const (
	KindText   = "text"
	KindSource = "source"
	KindAttach = "attach"
)

// TraceEvent is one document mutation.
type TraceEvent struct {
	Seq   int    `json:"seq"`
	Tick  int    `json:"tick"`
	Node  string `json:"node"` // node name, or the container for attach
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Alt   string `json:"alt,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every tick succeeded and every assertion held.
	Pass bool `json:"pass"`

	// Trace contains every mutation in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains tick and assertion failures.
	Errors []string `json:"errors,omitempty"`

	// Snapshot is the gates' last values after the final tick. It is only
	// meaningful when Settled is true.
	Snapshot widget.Snapshot `json:"snapshot"`

	// Settled is true once every gate has dispatched at least once.
	Settled bool `json:"settled"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
