package gate

// Sampler derives a value from an input. Samplers must be pure: the same
// input always yields the same value.
type Sampler[In any, T comparable] func(In) (T, error)

// Handler is notified with a newly sampled value.
type Handler[T any] func(T) error

// Pure lifts an infallible function into a Sampler.
func Pure[In any, T comparable](f func(In) T) Sampler[In, T] {
	return func(in In) (T, error) {
		return f(in), nil
	}
}

// Gate suppresses notifications for values that have not changed since the
// last dispatch.
//
// The zero Gate is not usable; construct with New.
type Gate[In any, T comparable] struct {
	sample   Sampler[In, T]
	onChange Handler[T]

	last   T
	primed bool // false until the first successful sample
}

// New creates an unprimed Gate. The first Run always notifies.
func New[In any, T comparable](sample Sampler[In, T], onChange Handler[T]) *Gate[In, T] {
	return &Gate[In, T]{
		sample:   sample,
		onChange: onChange,
	}
}

// Run samples in and notifies the Handler if the value changed.
//
// The remembered value is updated before the Handler is called.
func (g *Gate[In, T]) Run(in In) error {
	val, err := g.sample(in)
	if err != nil {
		return &Error{Code: ErrCodeSample, Slot: -1, Err: err}
	}

	if g.primed && val == g.last {
		return nil
	}

	g.last = val
	g.primed = true

	if g.onChange == nil {
		return nil
	}
	if err := g.onChange(val); err != nil {
		return &Error{Code: ErrCodeHandler, Slot: -1, Err: err}
	}
	return nil
}

// Last returns the last dispatched value. ok is false until the Gate has
// dispatched once.
func (g *Gate[In, T]) Last() (val T, ok bool) {
	return g.last, g.primed
}
