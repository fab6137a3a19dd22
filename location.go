package cascade

import (
	"cmp"
	"fmt"
	"runtime"
)

// Location identifies a source position: the file and the line of a call expression.
type Location struct {
	File string
	Line int
}

// Here returns the location of the expression calling Here.
func Here() Location {
	return callerLocation(1)
}

// At returns a location made of caller supplied file and line, for code
// that cannot rely on the runtime to resolve its position.
func At(file string, line int) Location {
	return Location{File: file, Line: line}
}

// callerLocation resolves the location skip frames above its caller.
func callerLocation(skip int) Location {
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		return Location{
			Line: line,
			File: file,
		}
	}
	return Location{}
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

func (l Location) Empty() bool {
	return l.File == ""
}

// Less reports whether l sorts before o.
func (l Location) Less(o Location) bool {
	return Compare(l, o) < 0
}

// Compare orders locations by file, then by line.
func Compare(a, b Location) int {
	if c := cmp.Compare(a.File, b.File); c != 0 {
		return c
	}
	return cmp.Compare(a.Line, b.Line)
}
