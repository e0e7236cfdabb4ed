// Package planstate encodes concrete SAS⁺ states (total assignments, one
// small non-negative integer per variable) into a comparable key so search
// bookkeeping can use plain Go maps keyed by ==, as the teacher's core
// package keys vertices and edges by plain string IDs rather than nested
// structural maps.
package planstate

import (
	"strconv"
	"strings"
)

// State is a comparable encoding of a concrete SAS⁺ state. Two states
// encode equal iff they are componentwise equal.
type State string

// Encode packs values into a State key.
func Encode(values []int) State {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}

	return State(b.String())
}

// Decode unpacks a State back into a value vector.
func Decode(s State) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(string(s), ",")
	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			// A State only ever originates from Encode, so a malformed
			// payload here means the caller handed us a foreign string.
			panic("planstate: malformed state key: " + p)
		}
		values[i] = v
	}

	return values
}
