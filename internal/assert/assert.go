// Package assert is an internal invariant-checking helper, in the spirit
// of the teacher's inline panic(fmt.Sprintf(...)) guards in builder and
// matrix (e.g. builder.WithAmplitude, matrix.VertexCount): a violated
// invariant here is a bug in this program, not a malformed task, so it
// panics rather than returning an error.
package assert

import "fmt"

// True panics with msg (formatted with args) if cond is false.
func True(cond bool, msg string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(msg, args...))
	}
}
