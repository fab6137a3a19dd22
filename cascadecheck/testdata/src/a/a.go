package a

import (
	"errors"

	"github.com/vovanec/cascade"
)

type appError struct {
	cause error
}

func (e *appError) Error() string {
	return "app: " + e.cause.Error()
}

func toApp(err error) *appError {
	return &appError{cause: err}
}

func discarded() {
	err := errors.New("boom")
	cascade.New(err)                  // want `result of cascade\.New is discarded`
	cascade.Lift(err, cascade.Here()) // want `result of cascade\.Lift is discarded`
	cascade.NewFunc[error]()          // want `result of cascade\.NewFunc is discarded`
}

func discardedTranslation(c *cascade.Error[error]) {
	cascade.Translate(c, toApp) // want `result of cascade\.Translate is discarded`
}

func relayed(c *cascade.Error[error]) *cascade.Error[error] {
	cascade.Relay(c)
	return c
}

func usedAfterMove(c *cascade.Error[error]) error {
	app := cascade.Translate(c, toApp)
	_ = c.Error() // want `c used after being moved by cascade\.Translate`
	return app
}

func usedAfterMap(c *cascade.Error[error]) error {
	app := cascade.Map(c, toApp, cascade.Here())
	if app.Inner().cause != nil {
		return c // want `c used after being moved by cascade\.Map`
	}
	return app
}

func reassigned(c *cascade.Error[error]) *cascade.Error[error] {
	next := cascade.Map(c, func(e error) error { return e }, cascade.Here())
	c = next
	return c
}

func reassignedInPlace(c *cascade.Error[error]) *cascade.Error[error] {
	c = cascade.Map(c, func(e error) error { return e }, cascade.Here())
	c = cascade.Translate(c, func(e error) error { return e })
	return c
}

func movedInBranch(c *cascade.Error[error]) error {
	if c.Error() == "" {
		return cascade.Translate(c, toApp)
	}
	return c
}

func movedInCase(c *cascade.Error[error], n int) error {
	switch n {
	case 0:
		app := cascade.Translate(c, toApp)
		_ = c // want `c used after being moved by cascade\.Translate`
		return app
	default:
		return c
	}
}

func fine() error {
	c := cascade.New(errors.New("boom"))
	return cascade.Translate(c, toApp)
}
