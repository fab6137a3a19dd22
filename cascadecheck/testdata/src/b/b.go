package b

type myErr struct{}

func (myErr) Error() string { return "my" }

type traced struct {
	err error
}

func begin(err error) *traced { return &traced{err: err} }

func convert(t *traced) *traced { return &traced{err: t.err} }

func f() *traced {
	begin(myErr{}) // want `result of b\.begin is discarded`
	t := begin(myErr{})
	u := convert(t)
	_ = t // want `t used after being moved by b\.convert`
	return u
}
