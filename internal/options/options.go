// Package options holds the generic functional-option plumbing behind the
// encoder and snapshot configuration surfaces. Each config type exposes a
// concrete Option alias over this package (DictionaryEncoderOption,
// RunLengthEncoderOption, snapshot.Option), so callers never deal with the
// generics directly.
package options

// Option configures a target of type T, typically a pointer to an encoder
// config. Options validate their input; a failing option surfaces as the
// constructor's error.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to the Option contract.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps a validating function as an option.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// Apply runs opts against target in order, stopping at the first option
// that fails. The target may be partially configured after a failure;
// constructors discard it rather than publish it.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// NoError wraps a function that cannot fail, for options that only set a
// field.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}
