// Package search implements A* best-first search over a concrete state
// space, driven by an admissible heuristic.
//
// The open set is a container/heap priority queue ordered by g+h, with a
// lazy decrease-key discipline: a cheaper path to an already-queued state
// pushes a new entry instead of mutating the old one, and stale entries are
// skipped on pop via a closed-set check — exactly the idiom the teacher's
// dijkstra package uses for its own priority queue, since Dijkstra is
// A* with h ≡ 0 over a fixed graph instead of a generic Expander.
package search

import (
	"container/heap"

	"sasplanner/planstate"
)

// Edge is one outgoing transition from a state: firing operator OpIndex at
// cost Cost leads to Next.
type Edge struct {
	OpIndex int
	Cost    int
	Next    []int
}

// Expander returns every edge applicable from state.
type Expander func(state []int) []Edge

// Heuristic estimates the remaining cost to the goal from state. It must be
// admissible (and, for re-expansion-free A*, consistent) for the returned
// plan to be optimal.
type Heuristic func(state []int) int

// GoalTest reports whether state satisfies the goal.
type GoalTest func(state []int) bool

// Result is the outcome of AStar: a plan (by operator index) with its
// total cost, or (nil, -1) if no plan exists.
type Result struct {
	Plan []int
	Cost int
}

// AStar runs canonical A* from initial. Relaxation is gated on
// g[current]+c < g[next] even though h is assumed consistent (so no
// reached state is ever re-expanded), per the engine's own bookkeeping
// invariant rather than relying on the heuristic's properties alone.
func AStar(initial []int, isGoal GoalTest, expand Expander, h Heuristic) Result {
	e := &engine{
		g:      make(map[planstate.State]int),
		parent: make(map[planstate.State]step),
		closed: make(map[planstate.State]bool),
	}

	s0 := planstate.Encode(initial)
	e.g[s0] = 0
	heap.Push(&e.open, &item{state: s0, values: initial, priority: h(initial)})

	for e.open.Len() > 0 {
		cur := heap.Pop(&e.open).(*item)
		if e.closed[cur.state] {
			continue
		}
		e.closed[cur.state] = true

		if isGoal(cur.values) {
			return e.reconstruct(cur.state)
		}

		gCur := e.g[cur.state]
		for _, edge := range expand(cur.values) {
			nextState := planstate.Encode(edge.Next)
			candidate := gCur + edge.Cost
			if best, ok := e.g[nextState]; ok && candidate >= best {
				continue
			}
			e.g[nextState] = candidate
			e.parent[nextState] = step{from: cur.state, opIndex: edge.OpIndex, cost: edge.Cost}
			heap.Push(&e.open, &item{
				state:    nextState,
				values:   edge.Next,
				priority: candidate + h(edge.Next),
				g:        candidate,
			})
		}
	}

	return Result{Plan: nil, Cost: -1}
}

// step records how a state was reached: from which predecessor, by which
// operator, at what incremental cost.
type step struct {
	from    planstate.State
	opIndex int
	cost    int
}

// engine holds the mutable bookkeeping for one AStar call.
type engine struct {
	open   openList
	g      map[planstate.State]int
	parent map[planstate.State]step
	closed map[planstate.State]bool
}

func (e *engine) reconstruct(goal planstate.State) Result {
	var plan []int
	cost := 0
	s := goal
	for {
		st, ok := e.parent[s]
		if !ok {
			break
		}
		plan = append(plan, st.opIndex)
		cost += st.cost
		s = st.from
	}

	// Reverse into execution order.
	for i, j := 0, len(plan)-1; i < j; i, j = i+1, j-1 {
		plan[i], plan[j] = plan[j], plan[i]
	}

	return Result{Plan: plan, Cost: cost}
}

// item is one open-set entry: a state, its decoded values (kept alongside
// the key to avoid re-decoding on pop), and its f = g+h priority.
type item struct {
	state    planstate.State
	values   []int
	priority int
	g        int
}

// openList is a min-heap ordered by priority, with ties broken toward the
// larger g (prefer states closer to the goal, a deterministic strengthening
// spec.md explicitly allows).
type openList []*item

func (o openList) Len() int { return len(o) }
func (o openList) Less(i, j int) bool {
	if o[i].priority != o[j].priority {
		return o[i].priority < o[j].priority
	}
	return o[i].g > o[j].g
}
func (o openList) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openList) Push(x interface{}) { *o = append(*o, x.(*item)) }

func (o *openList) Pop() interface{} {
	old := *o
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]

	return it
}
