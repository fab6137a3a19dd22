// Package cascade attaches a trail of source locations to an error as it is
// returned through the call stack.
//
// A failure starts a trace with New, frames passing the error on add their
// location with Relay, and frames crossing an API boundary convert the error
// value with Translate while keeping the trace:
//
//	func read() ([]byte, *cascade.Error[*os.PathError]) { ... return nil, cascade.New(err) }
//
//	func load() *cascade.Error[*os.PathError] {
//		if _, err := read(); err != nil {
//			return cascade.Relay(err)
//		}
//		...
//	}
//
//	func start() *cascade.Error[*StartupError] {
//		if err := load(); err != nil {
//			return cascade.Translate(err, NewStartupError)
//		}
//		...
//	}
//
// Only these explicit call sites are recorded; no stack unwinding happens.
package cascade

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/vovanec/cascade/internal"
)

// Cascadable is the constraint on values an Error may carry.
// Every Go error type satisfies it.
type Cascadable interface {
	error
}

// Error pairs an error value with the ordered trace of locations
// it was propagated through. An Error has a single owner: it is
// not safe for concurrent mutation.
type Error[E Cascadable] struct {
	err   E
	trace Trace
}

// Lift packages err with a trace holding the single entry at.
func Lift[E Cascadable](err E, at Location) *Error[E] {
	return &Error[E]{
		err:   err,
		trace: NewTrace(at),
	}
}

// Inner returns the wrapped error value, leaving e intact.
func (e *Error[E]) Inner() E {
	return e.err
}

// IntoInner returns the wrapped error value and drops the trace.
// e must not be used afterwards.
func (e *Error[E]) IntoInner() E {
	err := e.err
	e.trace = Trace{}
	return err
}

// Push appends at to the trace.
func (e *Error[E]) Push(at Location) {
	e.trace.Push(at)
}

// Trace returns a copy of the trace.
func (e *Error[E]) Trace() Trace {
	if e == nil {
		return Trace{}
	}
	return e.trace
}

// Origin returns the location where the error entered the trace.
func (e *Error[E]) Origin() Location {
	if e == nil {
		return Location{}
	}
	return e.trace.Origin()
}

// Map converts the error value of e with fn and appends at to the trace.
// The trace moves to the returned Error; e must not be used afterwards.
func Map[E, Q Cascadable](e *Error[E], fn func(E) Q, at Location) *Error[Q] {
	trace := e.trace
	e.trace = Trace{}
	trace.Push(at)

	return &Error[Q]{
		err:   fn(e.err),
		trace: trace,
	}
}

func (e *Error[E]) Error() string {
	if e == nil || any(e.err) == nil {
		return "<nil>"
	}
	return e.err.Error()
}

// Unwrap returns the wrapped error value, so errors.Is and errors.As
// look through the trace.
func (e *Error[E]) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Format prints the error message for %s and %v. With %+v the trace
// follows the message, one location per line.
func (e *Error[E]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if e != nil && (s.Flag('+') || s.Flag('#')) {
			_, _ = fmt.Fprint(s, e.Error())
			for _, l := range e.trace.All() {
				_, _ = fmt.Fprintf(s, "\n\t%s", l)
			}
			return
		}

		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// LogValue groups the message, origin and trace under the "error" key.
// Attributes logged by the wrapped value itself are kept next to it.
func (e *Error[E]) LogValue() slog.Value {
	if e == nil {
		return slog.GroupValue(
			slog.Group(internal.ErrKey, slog.String(internal.MsgKey, e.Error())),
		)
	}

	var attrs []slog.Attr
	if lv, ok := any(e.err).(slog.LogValuer); ok {
		if v := lv.LogValue().Resolve(); v.Kind() == slog.KindGroup {
			for _, a := range v.Group() {
				if a.Key != internal.ErrKey {
					attrs = append(attrs, a)
				}
			}
		}
	}

	errAttrs := []slog.Attr{slog.String(internal.MsgKey, e.Error())}
	if o := e.trace.Origin(); !o.Empty() {
		errAttrs = append(errAttrs,
			slog.String(internal.OriginKey, o.String()),
			slog.Any(internal.TraceKey, e.trace),
		)
	}
	attrs = append(attrs, slog.Attr{
		Key:   internal.ErrKey,
		Value: slog.GroupValue(errAttrs...),
	})

	slices.SortFunc(attrs, func(a, b slog.Attr) int {
		return cmp.Compare(a.Key, b.Key)
	})

	return slog.GroupValue(attrs...)
}
