package cascade

import (
	"iter"
	"log/slog"
	"strings"
)

// inlineLen is how many entries a Trace holds before it allocates.
// Most errors cross only a couple of frames between origin and handler.
const inlineLen = 2

// Trace is an ordered, append-only sequence of locations.
// The zero value is an empty trace. Copies of a Trace are independent:
// pushing to one never changes the entries seen by another.
type Trace struct {
	n      int
	inline [inlineLen]Location
	// spill may be shared between copies. Entries below a copy's length
	// are never written again; only the copy whose length matches the
	// buffer appends in place, the others reallocate.
	spill *[]Location
}

// NewTrace returns a trace holding the single entry first.
func NewTrace(first Location) Trace {
	t := Trace{n: 1}
	t.inline[0] = first
	return t
}

// Push appends l to the end of the trace.
func (t *Trace) Push(l Location) {
	if t.n < inlineLen {
		t.inline[t.n] = l
	} else {
		k := t.n - inlineLen
		if t.spill == nil || len(*t.spill) != k {
			own := make([]Location, k, 2*k+1)
			if t.spill != nil {
				copy(own, (*t.spill)[:k])
			}
			t.spill = &own
		}
		*t.spill = append(*t.spill, l)
	}
	t.n++
}

func (t Trace) Len() int {
	return t.n
}

// All iterates over the entries in insertion order.
func (t Trace) All() iter.Seq2[int, Location] {
	return func(yield func(int, Location) bool) {
		for i := 0; i < t.n; i++ {
			if !yield(i, t.at(i)) {
				return
			}
		}
	}
}

// Origin returns the first entry, or the zero Location for an empty trace.
func (t Trace) Origin() Location {
	if t.n == 0 {
		return Location{}
	}
	return t.inline[0]
}

// Last returns the most recently pushed entry.
func (t Trace) Last() Location {
	if t.n == 0 {
		return Location{}
	}
	return t.at(t.n - 1)
}

// Slice returns a copy of the entries.
func (t Trace) Slice() []Location {
	ret := make([]Location, 0, t.n)
	for _, l := range t.All() {
		ret = append(ret, l)
	}
	return ret
}

func (t Trace) String() string {
	var ret []string
	for _, l := range t.All() {
		ret = append(ret, l.String())
	}
	return strings.Join(ret, " ")
}

// LogValue renders the trace as a list of "file:line" strings.
func (t Trace) LogValue() slog.Value {
	ret := make([]string, 0, t.n)
	for _, l := range t.All() {
		ret = append(ret, l.String())
	}
	return slog.AnyValue(ret)
}

func (t Trace) at(i int) Location {
	if i < inlineLen {
		return t.inline[i]
	}
	return (*t.spill)[i-inlineLen]
}
