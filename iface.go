package cascade

import "errors"

// ErrorOrigin is the interface that provides the Origin() method,
// which returns the location where the error first entered a trace.
type ErrorOrigin interface {
	Origin() Location
}

// Tracer is the interface that provides the Trace() method,
// which returns the locations an error was propagated through.
type Tracer interface {
	Trace() Trace
}

var (
	_ Tracer      = (*Error[error])(nil)
	_ ErrorOrigin = (*Error[error])(nil)
)

// TraceOf returns the trace of the first Tracer in err's chain.
func TraceOf(err error) (Trace, bool) {
	var t Tracer
	if errors.As(err, &t) {
		return t.Trace(), true
	}
	return Trace{}, false
}
