// Package successor builds a decision-tree successor generator for a SAS⁺
// task: a structure that, given a concrete state, returns the applicable
// operators in time independent of the total operator count in the typical
// case, by pruning on state-variable values instead of scanning every
// operator.
//
// The tree is built once, depth-first over variables in ascending index,
// exactly mirroring the recursive construction style the teacher's builder
// package uses for its own graph generators (a small per-shape constructor
// function threading accumulated state through recursive calls) — here the
// "shape" being built is a decision tree instead of a graph.
package successor

import "sasplanner/sas"

// Tree is an immutable, pure function of the (variables, operators) it was
// built from.
type Tree struct {
	root node
}

// node is either a selector (branches on one variable) or a generator (a
// leaf holding the operators applicable once every relevant variable has
// been dispatched on).
type node interface{ isNode() }

// selector branches on the value of Var. children has len(Domain)+1
// entries: children[val] for val in 0..Domain-1, and children[Domain] is
// the don't-care child for operators that do not constrain Var.
type selector struct {
	Var      int
	children []node
}

func (*selector) isNode() {}

// generator is a leaf: the operator indices applicable once control
// reaches it.
type generator struct {
	ops []int
}

func (*generator) isNode() {}

// Build constructs the decision tree for vars and ops. It is a pure
// function: ops is never mutated, and the returned Tree is safe to query
// concurrently from multiple goroutines (it is never mutated after Build
// returns).
func Build(vars []sas.Variable, ops []sas.Operator) *Tree {
	all := make([]int, len(ops))
	for i := range ops {
		all[i] = i
	}

	return &Tree{root: buildNode(0, vars, ops, all)}
}

// buildNode recurses over variables in ascending index. At depth == len(vars)
// every variable has been dispatched on (or skipped because nothing in
// candidates constrains it), so the remaining candidates form a leaf.
func buildNode(depth int, vars []sas.Variable, ops []sas.Operator, candidates []int) node {
	if depth == len(vars) {
		return &generator{ops: candidates}
	}

	if !anyConstrains(depth, ops, candidates) {
		return buildNode(depth+1, vars, ops, candidates)
	}

	domain := vars[depth].Domain
	children := make([]node, domain+1)
	constrained := make(map[int]bool, len(candidates))

	for val := 0; val < domain; val++ {
		matching := candidatesRequiring(depth, val, ops, candidates)
		for _, i := range matching {
			constrained[i] = true
		}
		children[val] = buildNode(depth+1, vars, ops, matching)
	}

	dontCare := make([]int, 0, len(candidates))
	for _, i := range candidates {
		if !constrained[i] {
			dontCare = append(dontCare, i)
		}
	}
	children[domain] = buildNode(depth+1, vars, ops, dontCare)

	return &selector{Var: depth, children: children}
}

// anyConstrains reports whether any candidate operator mentions var in its
// prevail conditions or in an effect with a non-unconditional From.
func anyConstrains(varIdx int, ops []sas.Operator, candidates []int) bool {
	for _, i := range candidates {
		if operatorConstrains(varIdx, ops[i]) {
			return true
		}
	}

	return false
}

func operatorConstrains(varIdx int, op sas.Operator) bool {
	for _, a := range op.Prevail {
		if a.Var == varIdx {
			return true
		}
	}
	for _, e := range op.Effects {
		if e.Var == varIdx && e.From != sas.Unconditional {
			return true
		}
	}

	return false
}

// candidatesRequiring returns the candidates that require (varIdx, val) —
// via prevail or via an effect's From — in prevail-or-effect order, first
// match wins per operator (an operator cannot both prevail and condition on
// the same variable in a well-formed task).
func candidatesRequiring(varIdx, val int, ops []sas.Operator, candidates []int) []int {
	var matching []int
	for _, i := range candidates {
		op := ops[i]
		matched := false
		for _, a := range op.Prevail {
			if a.Var == varIdx {
				if a.Value == val {
					matching = append(matching, i)
				}
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		for _, e := range op.Effects {
			if e.Var == varIdx {
				if e.From != sas.Unconditional && e.From == val {
					matching = append(matching, i)
				}
				break
			}
		}
	}

	return matching
}

// Applicable returns every operator index whose prevail and non-∅ `from`
// preconditions are satisfied by state.
func (t *Tree) Applicable(state []int) []int {
	var out []int
	collectApplicable(t.root, state, &out)

	return out
}

// collectApplicable appends matching operator indices into *out. Appending
// into a caller-owned accumulator (rather than returning and concatenating
// per-node slices) avoids aliasing a generator leaf's own ops slice across
// multiple Applicable calls.
func collectApplicable(n node, state []int, out *[]int) {
	switch v := n.(type) {
	case *selector:
		collectApplicable(v.children[state[v.Var]], state, out)
		collectApplicable(v.children[len(v.children)-1], state, out)
	case *generator:
		*out = append(*out, v.ops...)
	}
}

// Apply returns the state reached by firing op from state: a copy
// of state with every effect's To value written in.
func Apply(state []int, op sas.Operator) []int {
	next := make([]int, len(state))
	copy(next, state)
	for _, e := range op.Effects {
		next[e.Var] = e.To
	}

	return next
}
