package hmax_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"sasplanner/hmax"
	"sasplanner/sas"
	"sasplanner/strips"
)

func build(t *sas.Task) *strips.Task { return strips.Build(t) }

// TestValue_OneStep is spec.md scenario 2: a single operator a:0->1 cost 5.
// h^max of the initial state must be 5.
func TestValue_OneStep(t *testing.T) {
	task := &sas.Task{
		Variables: []sas.Variable{{Name: "x", Domain: 2}},
		Initial:   []int{0},
		Goal:      []sas.Assignment{{Var: 0, Value: 1}},
		Operators: []sas.Operator{
			{Name: "a", Cost: 5, Effects: []sas.Effect{{Var: 0, From: 0, To: 1}}},
		},
	}
	assert.Equal(t, 5, hmax.Value(build(task), task.Initial))
}

// TestValue_TwoStepChain is spec.md scenario 3: h^max must take the max
// over the chain, not the sum: 4, not 7.
func TestValue_TwoStepChain(t *testing.T) {
	task := &sas.Task{
		Variables: []sas.Variable{{Name: "x", Domain: 3}},
		Initial:   []int{0},
		Goal:      []sas.Assignment{{Var: 0, Value: 2}},
		Operators: []sas.Operator{
			{Name: "a", Cost: 3, Effects: []sas.Effect{{Var: 0, From: 0, To: 1}}},
			{Name: "b", Cost: 4, Effects: []sas.Effect{{Var: 0, From: 1, To: 2}}},
		},
	}
	assert.Equal(t, 4, hmax.Value(build(task), task.Initial))
}

// TestValue_Unreachable is spec.md scenario 5: no operators, goal unmet.
func TestValue_Unreachable(t *testing.T) {
	task := &sas.Task{
		Variables: []sas.Variable{{Name: "x", Domain: 2}},
		Initial:   []int{0},
		Goal:      []sas.Assignment{{Var: 0, Value: 1}},
	}
	assert.Equal(t, math.MaxInt, hmax.Value(build(task), task.Initial))
}

// TestValue_Trivial is spec.md scenario 1: no variables, no goal.
func TestValue_Trivial(t *testing.T) {
	task := &sas.Task{}
	assert.Equal(t, 0, hmax.Value(build(task), nil))
}

func TestValue_ZeroAtGoal(t *testing.T) {
	task := &sas.Task{
		Variables: []sas.Variable{{Name: "x", Domain: 2}},
		Initial:   []int{1},
		Goal:      []sas.Assignment{{Var: 0, Value: 1}},
	}
	assert.Equal(t, 0, hmax.Value(build(task), task.Initial))
}
