package cascade

// New starts a trace for err at the location of the call to New.
// It returns nil if err is a nil interface value.
func New[E Cascadable](err E) *Error[E] {
	if any(err) == nil {
		return nil
	}
	return Lift(err, callerLocation(1))
}

// Relay appends the location of the call to Relay to the trace of e
// and returns e.
func Relay[E Cascadable](e *Error[E]) *Error[E] {
	if e == nil {
		return nil
	}
	e.Push(callerLocation(1))
	return e
}

// Translate converts the error value of e with fn and appends the location
// of the call to Translate. e must not be used afterwards.
func Translate[E, Q Cascadable](e *Error[E], fn func(E) Q) *Error[Q] {
	if e == nil {
		return nil
	}
	return Map(e, fn, callerLocation(1))
}

// NewFunc returns a function behaving like New, recording the location
// of the call to NewFunc. It fits the error mapping argument of helpers
// that take one.
func NewFunc[E Cascadable]() func(E) *Error[E] {
	at := callerLocation(1)
	return func(err E) *Error[E] {
		if any(err) == nil {
			return nil
		}
		return Lift(err, at)
	}
}

// RelayFunc is Relay in the form NewFunc has.
func RelayFunc[E Cascadable]() func(*Error[E]) *Error[E] {
	at := callerLocation(1)
	return func(e *Error[E]) *Error[E] {
		if e == nil {
			return nil
		}
		e.Push(at)
		return e
	}
}

// TranslateFunc is Translate in the form NewFunc has.
func TranslateFunc[E, Q Cascadable](fn func(E) Q) func(*Error[E]) *Error[Q] {
	at := callerLocation(1)
	return func(e *Error[E]) *Error[Q] {
		if e == nil {
			return nil
		}
		return Map(e, fn, at)
	}
}
