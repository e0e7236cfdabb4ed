// Package plan wires the core components together: it builds the STRIPS⁺
// relaxation and successor tree from a parsed sas.Task once, then drives
// A* search with the requested heuristic. This is the glue layer the three
// CLI binaries (cmd/hmax, cmd/lmcut, cmd/planner) share.
package plan

import (
	"errors"
	"fmt"

	"sasplanner/hmax"
	"sasplanner/lmcut"
	"sasplanner/sas"
	"sasplanner/search"
	"sasplanner/strips"
	"sasplanner/successor"
)

// HeuristicName selects which admissible heuristic to drive A* with.
type HeuristicName string

const (
	HMax  HeuristicName = "hmax"
	LMCut HeuristicName = "lmcut"
)

// ErrUnknownHeuristic is returned for any HeuristicName other than HMax or
// LMCut.
var ErrUnknownHeuristic = errors.New("plan: unknown heuristic")

// Heuristic returns the admissible heuristic function for name.
func Heuristic(name HeuristicName, t *strips.Task) (func(state []int) int, error) {
	switch name {
	case HMax:
		return func(state []int) int { return hmax.Value(t, state) }, nil
	case LMCut:
		return func(state []int) int { return lmcut.Value(t, state) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
}

// Solution is a plan found by Solve: the sequence of operator names to
// apply, in order, and their total cost. Cost is -1 and Actions is nil iff
// no plan exists.
type Solution struct {
	Actions []string
	Cost    int
}

// Solve parses no input itself: it takes an already-parsed sas.Task and
// runs A* with the named heuristic, returning the optimal plan.
func Solve(t *sas.Task, heuristicName HeuristicName) (Solution, error) {
	strip := strips.Build(t)
	h, err := Heuristic(heuristicName, strip)
	if err != nil {
		return Solution{}, err
	}

	tree := successor.Build(t.Variables, t.Operators)

	isGoal := func(state []int) bool {
		for _, a := range t.Goal {
			if state[a.Var] != a.Value {
				return false
			}
		}
		return true
	}

	expand := func(state []int) []search.Edge {
		indices := tree.Applicable(state)
		edges := make([]search.Edge, len(indices))
		for i, opIdx := range indices {
			op := t.Operators[opIdx]
			edges[i] = search.Edge{
				OpIndex: opIdx,
				Cost:    op.Cost,
				Next:    successor.Apply(state, op),
			}
		}
		return edges
	}

	result := search.AStar(t.Initial, isGoal, expand, h)
	if result.Cost < 0 {
		return Solution{Actions: nil, Cost: -1}, nil
	}

	actions := make([]string, len(result.Plan))
	for i, opIdx := range result.Plan {
		actions[i] = t.Operators[opIdx].Name
	}

	return Solution{Actions: actions, Cost: result.Cost}, nil
}

// ErrInvalidPlan is returned by Validate when replaying a Solution against
// its task does not land on a goal state, or when the reported Cost
// disagrees with the sum of the replayed operators' costs.
var ErrInvalidPlan = errors.New("plan: invalid plan")

// Validate replays sol.Actions against t from its initial state, in order,
// via successor.Apply (the same transition function Solve uses to expand
// states), and confirms the replay reaches a goal state at the reported
// cost. Operator preconditions are not checked during the replay. It is the
// planner's self-check: a defense against a latent bug in Solve silently
// returning a plan that does not actually solve the task.
func Validate(t *sas.Task, sol Solution) error {
	if sol.Cost < 0 {
		return nil
	}

	byName := make(map[string]sas.Operator, len(t.Operators))
	for _, op := range t.Operators {
		byName[op.Name] = op
	}

	state := t.Initial
	cost := 0
	for _, name := range sol.Actions {
		op, ok := byName[name]
		if !ok {
			return fmt.Errorf("%w: operator %q not found in task", ErrInvalidPlan, name)
		}
		state = successor.Apply(state, op)
		cost += op.Cost
	}

	for _, a := range t.Goal {
		if state[a.Var] != a.Value {
			return fmt.Errorf("%w: goal variable %d unsatisfied after replay", ErrInvalidPlan, a.Var)
		}
	}
	if cost != sol.Cost {
		return fmt.Errorf("%w: replayed cost %d does not match reported cost %d", ErrInvalidPlan, cost, sol.Cost)
	}

	return nil
}

// Value computes the named heuristic's value at t's initial state, for the
// standalone hmax/lmcut CLIs. Returns gamma.Inf (math.MaxInt) for an
// unreachable goal.
func Value(t *sas.Task, heuristicName HeuristicName) (int, error) {
	strip := strips.Build(t)
	h, err := Heuristic(heuristicName, strip)
	if err != nil {
		return 0, err
	}

	return h(t.Initial), nil
}
