package gate

// Operation is anything driven by a single input per tick. *Gate and *Group
// both implement it, so Groups nest.
type Operation[In any] interface {
	Run(In) error
}

// OperationFunc adapts a plain function to Operation.
type OperationFunc[In any] func(In) error

// Run calls f(in).
func (f OperationFunc[In]) Run(in In) error {
	return f(in)
}

// Group fans one input out to a fixed sequence of operations.
type Group[In any] struct {
	ops []Operation[In] // fixed at construction, never reordered
}

// Join composes ops into a Group. Operations run in argument order.
//
// The slice is copied so later changes by the caller cannot reorder a live
// Group.
func Join[In any](ops ...Operation[In]) *Group[In] {
	cp := make([]Operation[In], len(ops))
	copy(cp, ops)
	return &Group[In]{ops: cp}
}

// Run drives every operation with in, stopping at the first error.
//
// Errors from Gates are annotated with the failing slot index.
func (g *Group[In]) Run(in In) error {
	for i, op := range g.ops {
		if err := op.Run(in); err != nil {
			return withSlot(err, i)
		}
	}
	return nil
}

// Len reports the number of slots.
func (g *Group[In]) Len() int {
	return len(g.ops)
}
