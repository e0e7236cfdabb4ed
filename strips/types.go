// Package strips builds the delete-free STRIPS⁺ relaxation of a SAS⁺ task.
//
// A STRIPS⁺ operator keeps only an add list (no delete effects), which makes
// the relaxation monotone: once a fact holds, it holds forever. This is the
// substrate the γ-fixpoint engine (package gamma) and its two heuristics
// (packages hmax, lmcut) operate on.
package strips

import "sasplanner/sas"

// Fact is a (variable, value) pair: the atomic proposition of the
// relaxation.
type Fact struct {
	Var   int
	Value int
}

// Operator is the delete-relaxed form of a sas.Operator: a set of facts
// that must hold (pre), a set of facts it establishes (add), and its cost.
type Operator struct {
	Pre  []Fact
	Add  []Fact
	Cost int
}

// Task is the STRIPS⁺ relaxation (F, A, s0f, Gf, P) of a sas.Task.
//
// Operators preserve the index order of the originating sas.Task.Operators.
// PreIndex[p] lists, in ascending operator-index order, every operator
// index i such that p is in Operators[i].Pre.
type Task struct {
	Facts     []Fact
	Operators []Operator
	Init      []Fact
	Goal      []Fact
	PreIndex  map[Fact][]int
}
