// Package cascade declares the surface of github.com/vovanec/cascade
// the analyzer tests type-check against.
package cascade

type Location struct {
	File string
	Line int
}

func Here() Location { return Location{} }

type Cascadable interface {
	error
}

type Error[E Cascadable] struct {
	err E
}

func (e *Error[E]) Error() string { return e.err.Error() }

func (e *Error[E]) Inner() E { return e.err }

func Lift[E Cascadable](err E, at Location) *Error[E] { return &Error[E]{err: err} }

func Map[E, Q Cascadable](e *Error[E], fn func(E) Q, at Location) *Error[Q] {
	return &Error[Q]{err: fn(e.err)}
}

func New[E Cascadable](err E) *Error[E] { return Lift(err, Here()) }

func Relay[E Cascadable](e *Error[E]) *Error[E] { return e }

func Translate[E, Q Cascadable](e *Error[E], fn func(E) Q) *Error[Q] { return Map(e, fn, Here()) }

func NewFunc[E Cascadable]() func(E) *Error[E] { return New[E] }
