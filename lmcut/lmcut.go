// Package lmcut implements the h^LM-cut admissible heuristic: iterated
// extraction of disjunctive action landmarks from a per-iteration
// justification graph over the delete relaxation.
//
// Each iteration behaves like a single max-flow/min-cut round: a forward
// zone reachable from the source (⊥) and a backward zero-cost closure of
// the sink (⊤) partition the justification graph, and the edges crossing
// from the forward zone into the backward zone form a cut landmark — the
// same "BFS a level graph, then walk the frontier" shape as the teacher's
// Dinic max-flow implementation, specialized to a cost-labelled multigraph
// instead of a capacity network.
package lmcut

import (
	"sasplanner/gamma"
	"sasplanner/internal/assert"
	"sasplanner/strips"
)

// Inf is the heuristic value returned when the goal is unreachable.
const Inf = gamma.Inf

// sentinel facts, distinguished from any (Var, Value) pair drawn from a
// real task by using variable indices no real task can produce.
var (
	top = strips.Fact{Var: -1, Value: 1} // ⊤
	bot = strips.Fact{Var: -1, Value: 0} // ⊥
)

// Value returns h^LM-cut(state).
func Value(t *strips.Task, state []int) int {
	source := make([]strips.Fact, len(state))
	for v, val := range state {
		source[v] = strips.Fact{Var: v, Value: val}
	}

	e := newEngine(t, source)
	return e.run()
}

// engine holds the augmented task and the per-call mutable cost vector for
// a single Value invocation. The original task is never mutated: costs are
// cloned once here and decremented locally.
type engine struct {
	facts     []strips.Fact
	operators []strips.Operator // augmented with init-op and goal-op
	costs     []int             // per-call mutable clone of operator costs
	preIndex  map[strips.Fact][]int
	initOp    int
	goalOp    int
}

func newEngine(t *strips.Task, source []strips.Fact) *engine {
	initOp := len(t.Operators)
	goalOp := initOp + 1

	operators := make([]strips.Operator, len(t.Operators), len(t.Operators)+2)
	copy(operators, t.Operators)
	operators = append(operators,
		strips.Operator{Pre: []strips.Fact{bot}, Add: source, Cost: 0}, // init-op
		strips.Operator{Pre: t.Goal, Add: []strips.Fact{top}, Cost: 0}, // goal-op
	)

	costs := make([]int, len(operators))
	for i, op := range operators {
		costs[i] = op.Cost
	}

	preIndex := make(map[strips.Fact][]int, len(t.PreIndex)+2)
	for f, idxs := range t.PreIndex {
		cp := make([]int, len(idxs))
		copy(cp, idxs)
		preIndex[f] = cp
	}
	for _, p := range t.Goal {
		preIndex[p] = append(preIndex[p], goalOp)
	}
	preIndex[top] = nil
	preIndex[bot] = []int{initOp}

	facts := make([]strips.Fact, len(t.Facts), len(t.Facts)+2)
	copy(facts, t.Facts)
	facts = append(facts, top, bot)

	return &engine{
		facts:     facts,
		operators: operators,
		costs:     costs,
		preIndex:  preIndex,
		initOp:    initOp,
		goalOp:    goalOp,
	}
}

func (e *engine) run() int {
	total := 0
	for {
		sigma := e.fixpoint()
		hStar := sigma[top]
		if hStar == gamma.Inf {
			return gamma.Inf
		}
		if hStar == 0 {
			return total
		}

		pcf := e.chooseAll(sigma)
		vGoal := e.backwardZeroCostClosure(pcf)
		landmark := e.cutLandmark(pcf, vGoal)

		m := gamma.Inf
		for _, i := range landmark {
			if e.costs[i] < m {
				m = e.costs[i]
			}
		}
		if m == 0 {
			return total
		}

		total += m
		for _, i := range landmark {
			e.costs[i] -= m
			assert.True(e.costs[i] >= 0, "lmcut: operator %d cost went negative (%d)", i, e.costs[i])
		}
	}
}

// costedTask is a thin strips.Task view over the engine's current (mutated)
// cost vector, so the fixpoint engine can be reused unchanged.
func (e *engine) costedTask() *strips.Task {
	operators := make([]strips.Operator, len(e.operators))
	for i, op := range e.operators {
		operators[i] = strips.Operator{Pre: op.Pre, Add: op.Add, Cost: e.costs[i]}
	}

	return &strips.Task{
		Facts:     e.facts,
		Operators: operators,
		PreIndex:  e.preIndex,
	}
}

func (e *engine) fixpoint() gamma.Sigma {
	return gamma.Fixpoint(e.costedTask(), []strips.Fact{bot}, gamma.Full, nil)
}

// chooseAll computes the precondition chooser pcf(o) for every operator:
// the precondition maximizing σ, ties broken toward the lexicographically
// larger (Var, Value) pair. Operators with empty pre, or whose every
// precondition has σ = ∞, have no defined pcf and contribute no edge.
func (e *engine) chooseAll(sigma gamma.Sigma) []*strips.Fact {
	pcf := make([]*strips.Fact, len(e.operators))
	for i, op := range e.operators {
		var best *strips.Fact
		bestCost := -1
		for _, p := range op.Pre {
			c := sigma[p]
			if c == gamma.Inf {
				continue
			}
			if best == nil || c > bestCost || (c == bestCost && less(*best, p)) {
				pCopy := p
				best, bestCost = &pCopy, c
			}
		}
		pcf[i] = best
	}

	return pcf
}

// less reports whether a precedes b in the tie-break order: b is preferred
// when it is lexicographically larger.
func less(a, b strips.Fact) bool {
	if a.Var != b.Var {
		return a.Var < b.Var
	}
	return a.Value < b.Value
}

type edge struct {
	to   strips.Fact
	cost int
	op   int
}

// backwardZeroCostClosure computes V_goal: the set of vertices from which
// ⊤ is reachable using only zero-cost justification-graph edges.
func (e *engine) backwardZeroCostClosure(pcf []*strips.Fact) map[strips.Fact]bool {
	rev := make(map[strips.Fact][]edge)
	for i, from := range pcf {
		if from == nil {
			continue
		}
		for _, q := range e.operators[i].Add {
			rev[q] = append(rev[q], edge{to: *from, cost: e.costs[i], op: i})
		}
	}

	vGoal := map[strips.Fact]bool{top: true}
	stack := []strips.Fact{top}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ed := range rev[v] {
			if ed.cost == 0 && !vGoal[ed.to] {
				vGoal[ed.to] = true
				stack = append(stack, ed.to)
			}
		}
	}

	return vGoal
}

// cutLandmark performs the forward traversal from ⊥, collecting the
// operator indices of every edge crossing the frontier into vGoal.
func (e *engine) cutLandmark(pcf []*strips.Fact, vGoal map[strips.Fact]bool) []int {
	fwd := make(map[strips.Fact][]edge)
	for i, from := range pcf {
		if from == nil {
			continue
		}
		for _, q := range e.operators[i].Add {
			fwd[*from] = append(fwd[*from], edge{to: q, cost: e.costs[i], op: i})
		}
	}

	inLandmark := make(map[int]bool)
	var landmark []int
	visited := map[strips.Fact]bool{bot: true}
	stack := []strips.Fact{bot}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ed := range fwd[v] {
			if vGoal[ed.to] {
				// An operator may have several add facts landing in
				// vGoal; record it once regardless.
				if !inLandmark[ed.op] {
					inLandmark[ed.op] = true
					landmark = append(landmark, ed.op)
				}
			} else if !visited[ed.to] {
				visited[ed.to] = true
				stack = append(stack, ed.to)
			}
		}
	}

	return landmark
}
