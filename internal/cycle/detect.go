// Package cycle finds directed cycles in a transaction graph.
//
// The searches are depth-first with a visited set and an on-stack marker for
// the active path; an edge to a node still on the path closes a cycle. They
// run on an explicit frame stack, so graph depth is not limited by the Go
// call stack.
package cycle

import "github.com/cleared-dev/txrisk/internal/model"

// Graph is the read-only view the searches need.
type Graph interface {
	Len() int
	Edges(i int) []model.Edge
}

type frame struct {
	node int
	next int // index of the next edge to examine
}

type search struct {
	g       Graph
	visited []bool
	onStack []bool
}

func newSearch(g Graph) *search {
	n := g.Len()
	return &search{
		g:       g,
		visited: make([]bool, n),
		onStack: make([]bool, n),
	}
}

// from explores every node reachable from start that is not yet visited.
// It returns the first cycle found as a path of account indices, or nil.
// Edges are examined in insertion order and the search stops at the first
// back edge.
func (s *search) from(start int) []int {
	s.visited[start] = true
	s.onStack[start] = true
	stack := []frame{{node: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		edges := s.g.Edges(top.node)
		if top.next == len(edges) {
			s.onStack[top.node] = false
			stack = stack[:len(stack)-1]
			continue
		}

		v := edges[top.next].To
		top.next++

		if !s.visited[v] {
			s.visited[v] = true
			s.onStack[v] = true
			stack = append(stack, frame{node: v})
			continue
		}
		if s.onStack[v] {
			return pathFrom(stack, v)
		}
	}
	return nil
}

// pathFrom returns the nodes on the active path starting at v.
func pathFrom(stack []frame, v int) []int {
	for k := len(stack) - 1; k >= 0; k-- {
		if stack[k].node == v {
			path := make([]int, 0, len(stack)-k)
			for _, f := range stack[k:] {
				path = append(path, f.node)
			}
			return path
		}
	}
	return nil
}

// HasCycleFrom reports whether a cycle is reachable from start, using fresh
// search state. The cycle need not pass through start itself.
func HasCycleFrom(g Graph, start int) bool {
	return newSearch(g).from(start) != nil
}

// HasAnyCycle reports whether the graph contains at least one directed cycle,
// self-loops included.
func HasAnyCycle(g Graph) bool {
	return FindCycle(g) != nil
}

// FindCycle returns the first cycle found when searching from every unvisited
// account in index order, as account indices in path order. A self-loop is
// returned as a single index. It returns nil for an acyclic graph.
func FindCycle(g Graph) []int {
	s := newSearch(g)
	for i := 0; i < g.Len(); i++ {
		if s.visited[i] {
			continue
		}
		if path := s.from(i); path != nil {
			return path
		}
	}
	return nil
}
