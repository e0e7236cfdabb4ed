// Package gamma computes the γ-fixpoint: the cheapest cost, under the
// delete relaxation, to achieve each fact of a strips.Task from a given
// source fact set.
//
// The recurrence is
//
//	σ(p) = 0                                           if p ∈ S
//	σ(p) = min over o with p ∈ add(o) of
//	           cost(o) + max_{q ∈ pre(o)} σ(q)           otherwise
//
// with max(∅) = 0 and ∞ absorbing under addition. The engine propagates σ
// Dijkstra-style: at each step it finalizes the cheapest not-yet-finished
// fact and relaxes every operator whose last precondition just closed — the
// same "extract-cheapest, relax successors" shape as a single-source
// shortest-path search, except the per-operator cost to propagate is a max
// over preconditions rather than a sum over a single incoming edge.
package gamma

import (
	"math"

	"sasplanner/strips"
)

// Inf represents an unreachable fact's cost.
const Inf = math.MaxInt

// Mode selects when Fixpoint may stop early.
type Mode int

const (
	// Partial stops as soon as every fact in the goal set passed to
	// Fixpoint is finished. Used by hmax, which only needs goal-fact
	// costs.
	Partial Mode = iota

	// Full runs to completion: every fact is finished, or no unfinished
	// fact has finite σ (early exit on exhaustion).
	Full
)

// Sigma maps facts to their γ-fixpoint cost. Facts absent from a Sigma (or
// mapped to Inf) are unreachable.
type Sigma map[strips.Fact]int

// Fixpoint computes σ over every fact of t reachable from source, stopping
// according to mode. goal is only consulted in Partial mode.
func Fixpoint(t *strips.Task, source []strips.Fact, mode Mode, goal []strips.Fact) Sigma {
	e := newEngine(t, source)
	e.run(mode, goal)

	return e.sigma
}

// engine holds the mutable propagation state for a single Fixpoint call.
type engine struct {
	task     *strips.Task
	sigma    Sigma
	finished map[strips.Fact]bool
	counter  []int // counter[i] = number of unclosed preconditions of Operators[i]
}

func newEngine(t *strips.Task, source []strips.Fact) *engine {
	e := &engine{
		task:     t,
		sigma:    make(Sigma, len(t.Facts)),
		finished: make(map[strips.Fact]bool, len(t.Facts)),
		counter:  make([]int, len(t.Operators)),
	}

	for _, f := range t.Facts {
		e.sigma[f] = Inf
	}
	for _, f := range source {
		e.sigma[f] = 0
	}

	for i, op := range t.Operators {
		e.counter[i] = len(op.Pre)
		if len(op.Pre) == 0 {
			e.relaxAdd(op, op.Cost)
		}
	}

	return e
}

// relaxAdd relaxes σ over op's add facts given that op's preconditions are
// all closed at the given firing cost.
func (e *engine) relaxAdd(op strips.Operator, firingCost int) {
	for _, p := range op.Add {
		if firingCost < e.sigma[p] {
			e.sigma[p] = firingCost
		}
	}
}

func (e *engine) run(mode Mode, goal []strips.Fact) {
	for {
		if e.done(mode, goal) {
			return
		}

		p, cost, ok := e.cheapestUnfinished()
		if !ok {
			// No unfinished fact has finite σ: early exit. Full mode
			// reaches this once the reachable facts are exhausted;
			// Partial mode reaches it when some goal fact is
			// unreachable, since that fact stays at Inf and is never
			// finished, so done() never returns true.
			return
		}
		e.finished[p] = true

		for _, i := range e.task.PreIndex[p] {
			e.counter[i]--
			if e.counter[i] == 0 {
				e.relaxAdd(e.task.Operators[i], e.task.Operators[i].Cost+cost)
			}
		}
	}
}

func (e *engine) done(mode Mode, goal []strips.Fact) bool {
	switch mode {
	case Partial:
		for _, p := range goal {
			if !e.finished[p] {
				return false
			}
		}
		return true
	default: // Full
		return len(e.finished) == len(e.task.Facts)
	}
}

// cheapestUnfinished returns the unfinished fact with minimum σ. Ties may be
// broken arbitrarily: the fixpoint result does not depend on the choice.
func (e *engine) cheapestUnfinished() (strips.Fact, int, bool) {
	best := Inf
	var bestFact strips.Fact
	found := false

	for _, f := range e.task.Facts {
		if e.finished[f] {
			continue
		}
		if c := e.sigma[f]; !found || c < best {
			best, bestFact, found = c, f, true
		}
	}

	if !found || best == Inf {
		return strips.Fact{}, 0, false
	}

	return bestFact, best, true
}
