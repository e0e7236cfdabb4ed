package successor_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"sasplanner/sas"
	"sasplanner/successor"
)

func TestApplicable_PrevailAndEffectGating(t *testing.T) {
	vars := []sas.Variable{{Name: "x", Domain: 2}, {Name: "y", Domain: 2}}
	ops := []sas.Operator{
		{Name: "needsXY", Prevail: []sas.Assignment{{Var: 0, Value: 1}}, Effects: []sas.Effect{{Var: 1, From: 0, To: 1}}},
		{Name: "dontCare", Effects: []sas.Effect{{Var: 1, From: sas.Unconditional, To: 1}}},
	}
	tree := successor.Build(vars, ops)

	// x=0,y=0: needsXY's prevail (x=1) fails; dontCare never constrains x
	// and has no precondition on y, so it always applies.
	got := tree.Applicable([]int{0, 0})
	assert.ElementsMatch(t, []int{1}, got)

	// x=1,y=0: both apply.
	got = tree.Applicable([]int{1, 0})
	sort.Ints(got)
	assert.Equal(t, []int{0, 1}, got)
}

func TestApplicable_SoundnessAndCompleteness(t *testing.T) {
	// Exhaustively check every state against a brute-force scan, for a
	// task exercising prevail, conditioned effects, and unconditional
	// effects across three variables.
	vars := []sas.Variable{{Name: "a", Domain: 3}, {Name: "b", Domain: 2}, {Name: "c", Domain: 2}}
	ops := []sas.Operator{
		{Prevail: []sas.Assignment{{Var: 0, Value: 2}}, Effects: []sas.Effect{{Var: 2, From: sas.Unconditional, To: 1}}},
		{Effects: []sas.Effect{{Var: 1, From: 0, To: 1}, {Var: 0, From: sas.Unconditional, To: 1}}},
		{Effects: []sas.Effect{{Var: 2, From: 1, To: 0}}},
	}
	tree := successor.Build(vars, ops)

	for a := 0; a < 3; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 2; c++ {
				state := []int{a, b, c}
				got := tree.Applicable(state)
				want := bruteForce(ops, state)
				assert.ElementsMatch(t, want, got, "state=%v", state)
			}
		}
	}
}

func bruteForce(ops []sas.Operator, state []int) []int {
	var result []int
	for i, op := range ops {
		ok := true
		for _, p := range op.Prevail {
			if state[p.Var] != p.Value {
				ok = false
				break
			}
		}
		if ok {
			for _, e := range op.Effects {
				if e.From != sas.Unconditional && state[e.Var] != e.From {
					ok = false
					break
				}
			}
		}
		if ok {
			result = append(result, i)
		}
	}
	return result
}

func TestApply_WritesEffectsAndCopies(t *testing.T) {
	op := sas.Operator{Effects: []sas.Effect{{Var: 0, From: sas.Unconditional, To: 1}}}
	state := []int{0, 9}
	next := successor.Apply(state, op)
	assert.Equal(t, []int{1, 9}, next)
	assert.Equal(t, []int{0, 9}, state, "Apply must not mutate its input")
}

func TestApplicable_SharedGeneratorLeafNotCorrupted(t *testing.T) {
	// Two calls to Applicable must not alias and mutate a generator
	// leaf's own operator-index slice.
	vars := []sas.Variable{{Name: "x", Domain: 2}}
	ops := []sas.Operator{{Effects: []sas.Effect{{Var: 0, From: sas.Unconditional, To: 1}}}}
	tree := successor.Build(vars, ops)

	first := tree.Applicable([]int{0})
	first = append(first, 99) // would corrupt a shared backing array
	second := tree.Applicable([]int{1})
	assert.Equal(t, []int{0}, second)
	_ = first
}
