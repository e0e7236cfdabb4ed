package gamma_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"sasplanner/gamma"
	"sasplanner/strips"
)

func f(v, val int) strips.Fact { return strips.Fact{Var: v, Value: val} }

// chainStrips is spec.md's two-step chain: a:0->1 cost 3, b:1->2 cost 4.
func chainStrips() *strips.Task {
	ops := []strips.Operator{
		{Pre: []strips.Fact{f(0, 0)}, Add: []strips.Fact{f(0, 1)}, Cost: 3},
		{Pre: []strips.Fact{f(0, 1)}, Add: []strips.Fact{f(0, 2)}, Cost: 4},
	}
	facts := []strips.Fact{f(0, 0), f(0, 1), f(0, 2)}
	pre := map[strips.Fact][]int{f(0, 0): {0}, f(0, 1): {1}, f(0, 2): nil}
	return &strips.Task{Facts: facts, Operators: ops, PreIndex: pre}
}

func TestFixpoint_Chain(t *testing.T) {
	sigma := gamma.Fixpoint(chainStrips(), []strips.Fact{f(0, 0)}, gamma.Full, nil)
	assert.Equal(t, 0, sigma[f(0, 0)])
	assert.Equal(t, 3, sigma[f(0, 1)])
	assert.Equal(t, 7, sigma[f(0, 2)])
}

func TestFixpoint_PartialStopsAtGoal(t *testing.T) {
	sigma := gamma.Fixpoint(chainStrips(), []strips.Fact{f(0, 0)}, gamma.Partial, []strips.Fact{f(0, 1)})
	assert.Equal(t, 3, sigma[f(0, 1)])
}

func TestFixpoint_UnreachableFactIsInf(t *testing.T) {
	task := &strips.Task{
		Facts:    []strips.Fact{f(0, 0), f(0, 1)},
		PreIndex: map[strips.Fact][]int{f(0, 0): nil, f(0, 1): nil},
	}
	sigma := gamma.Fixpoint(task, []strips.Fact{f(0, 0)}, gamma.Full, nil)
	assert.Equal(t, math.MaxInt, sigma[f(0, 1)])
}

func TestFixpoint_DisjunctiveAchieverPicksCheapest(t *testing.T) {
	// Two independent achievers for (g,1): cheap cost 2, dear cost 9.
	ops := []strips.Operator{
		{Pre: nil, Add: []strips.Fact{f(0, 1)}, Cost: 2},
		{Pre: nil, Add: []strips.Fact{f(0, 1)}, Cost: 9},
	}
	task := &strips.Task{
		Facts:    []strips.Fact{f(0, 0), f(0, 1)},
		PreIndex: map[strips.Fact][]int{f(0, 0): nil, f(0, 1): nil},
		Operators: ops,
	}
	sigma := gamma.Fixpoint(task, []strips.Fact{f(0, 0)}, gamma.Full, nil)
	assert.Equal(t, 2, sigma[f(0, 1)])
}

func TestFixpoint_Monotonicity(t *testing.T) {
	// sigma from a smaller source set is pointwise >= sigma from a
	// superset, as required by spec.md's relaxation-monotonicity property.
	task := chainStrips()
	small := gamma.Fixpoint(task, []strips.Fact{f(0, 0)}, gamma.Full, nil)
	big := gamma.Fixpoint(task, []strips.Fact{f(0, 0), f(0, 1)}, gamma.Full, nil)
	for _, fact := range task.Facts {
		assert.GreaterOrEqual(t, small[fact], big[fact])
	}
}

func TestFixpoint_Law(t *testing.T) {
	// For every operator with all-finite pre, sigma(p) <= cost(o) + max(pre).
	task := chainStrips()
	sigma := gamma.Fixpoint(task, []strips.Fact{f(0, 0)}, gamma.Full, nil)
	for _, op := range task.Operators {
		maxPre := 0
		allFinite := true
		for _, p := range op.Pre {
			if sigma[p] == math.MaxInt {
				allFinite = false
				break
			}
			if sigma[p] > maxPre {
				maxPre = sigma[p]
			}
		}
		if !allFinite {
			continue
		}
		for _, p := range op.Add {
			assert.LessOrEqual(t, sigma[p], op.Cost+maxPre)
		}
	}
}

func TestFixpoint_ZeroCostOperatorNoPre(t *testing.T) {
	task := &strips.Task{
		Facts:     []strips.Fact{f(0, 0)},
		Operators: []strips.Operator{{Pre: nil, Add: []strips.Fact{f(0, 0)}, Cost: 0}},
		PreIndex:  map[strips.Fact][]int{f(0, 0): nil},
	}
	sigma := gamma.Fixpoint(task, nil, gamma.Full, nil)
	assert.Equal(t, 0, sigma[f(0, 0)])
}
