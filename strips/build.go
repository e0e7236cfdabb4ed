package strips

import (
	"sasplanner/internal/assert"
	"sasplanner/sas"
)

// Build computes the STRIPS⁺ relaxation of t.
//
// pre(o) is the union of o's prevail conditions and every effect whose From
// is not sas.Unconditional (using that required pre-value); add(o) is
// {(Var, To)} for every effect. F is the union of every fact mentioned in
// the initial state, the goal, or any operator's pre/add. Build is a pure
// function: t is never mutated.
func Build(t *sas.Task) *Task {
	facts := newFactSet()

	init := make([]Fact, len(t.Initial))
	for v, value := range t.Initial {
		f := Fact{Var: v, Value: value}
		init[v] = f
		facts.add(f)
	}

	goal := make([]Fact, len(t.Goal))
	for i, a := range t.Goal {
		f := Fact{Var: a.Var, Value: a.Value}
		goal[i] = f
		facts.add(f)
	}

	operators := make([]Operator, len(t.Operators))
	for i, op := range t.Operators {
		pre := make([]Fact, 0, len(op.Prevail)+len(op.Effects))
		for _, a := range op.Prevail {
			f := Fact{Var: a.Var, Value: a.Value}
			pre = append(pre, f)
			facts.add(f)
		}
		for _, e := range op.Effects {
			if e.From != sas.Unconditional {
				f := Fact{Var: e.Var, Value: e.From}
				pre = append(pre, f)
				facts.add(f)
			}
		}

		add := make([]Fact, len(op.Effects))
		for j, e := range op.Effects {
			f := Fact{Var: e.Var, Value: e.To}
			add[j] = f
			facts.add(f)
		}

		operators[i] = Operator{Pre: pre, Add: add, Cost: op.Cost}
	}

	preIndex := make(map[Fact][]int, len(facts.order))
	for _, f := range facts.order {
		preIndex[f] = nil
	}
	for i, op := range operators {
		for _, p := range op.Pre {
			preIndex[p] = append(preIndex[p], i)
		}
	}

	assert.True(len(preIndex) == len(facts.order), "strips: PreIndex has %d entries for %d facts", len(preIndex), len(facts.order))

	return &Task{
		Facts:     facts.order,
		Operators: operators,
		Init:      init,
		Goal:      goal,
		PreIndex:  preIndex,
	}
}

// factSet collects distinct facts while preserving first-seen order, giving
// Build a deterministic Facts slice independent of Go's map iteration order.
type factSet struct {
	seen  map[Fact]struct{}
	order []Fact
}

func newFactSet() *factSet {
	return &factSet{seen: make(map[Fact]struct{})}
}

func (s *factSet) add(f Fact) {
	if _, ok := s.seen[f]; ok {
		return
	}
	s.seen[f] = struct{}{}
	s.order = append(s.order, f)
}
