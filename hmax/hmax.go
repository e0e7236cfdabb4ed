// Package hmax implements the h^max admissible heuristic: the γ-fixpoint
// cost of the single hardest-to-reach goal fact.
package hmax

import (
	"sasplanner/gamma"
	"sasplanner/strips"
)

// Inf is the heuristic value returned when any goal fact is unreachable.
const Inf = gamma.Inf

// Value returns h^max(state): the γ-fixpoint partial-mode cost from the
// facts of state, maximized over t.Goal.
func Value(t *strips.Task, state []int) int {
	source := make([]strips.Fact, len(state))
	for v, val := range state {
		source[v] = strips.Fact{Var: v, Value: val}
	}

	sigma := gamma.Fixpoint(t, source, gamma.Partial, t.Goal)

	max := 0
	for _, p := range t.Goal {
		if c := sigma[p]; c > max {
			max = c
		}
	}

	return max
}
