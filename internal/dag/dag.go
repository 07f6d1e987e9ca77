// SPDX-License-Identifier: MPL-2.0

// Package dag provides directed acyclic graph operations for topological
// sorting and cycle detection. It is used by the target execution pipeline
// to order prerequisite targets before the targets that depend on them.
package dag

import (
	"fmt"
	"strings"
)

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError struct {
		// Cycle contains the nodes that form the cycle (not necessarily all of them,
		// but enough to identify the problem).
		Cycle []string
	}

	// UnknownNodeError indicates that an ordering was requested for a node
	// that was never added to the graph.
	UnknownNodeError struct {
		Name string
	}

	// Graph is a directed graph for topological sorting.
	// Nodes are identified by string keys. Edges represent "must run before"
	// relationships: an edge from A to B means A must complete before B starts.
	Graph struct {
		// adjacency maps each node to its outgoing neighbors (nodes that depend on it).
		adjacency map[string][]string
		// incoming maps each node to its prerequisites, in insertion order.
		incoming map[string][]string
		// nodes tracks all nodes in insertion order for deterministic output.
		nodes []string
		// nodeSet provides O(1) lookup for node existence.
		nodeSet map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown target '%s'", e.Name)
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		incoming:  make(map[string][]string),
		nodeSet:   make(map[string]bool),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge adds a directed edge from -> to, meaning "from" must run before "to".
// Both nodes are implicitly added if they don't exist.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	g.adjacency[from] = append(g.adjacency[from], to)
	g.incoming[to] = append(g.incoming[to], from)
}

// HasNode reports whether the node exists in the graph.
func (g *Graph) HasNode(name string) bool {
	return g.nodeSet[name]
}

// TopologicalSort returns a valid execution order using Kahn's algorithm.
// Returns CycleError if the graph contains a cycle.
// The returned order is deterministic: nodes at the same topological level
// appear in the order they were first added to the graph.
func (g *Graph) TopologicalSort() ([]string, error) {
	return g.sortSubset(g.nodes)
}

// OrderFor returns the execution order for the given root nodes and their
// transitive prerequisites only: every prerequisite appears before the
// node that declared it, and nothing outside the roots' dependency closure
// is included. Returns UnknownNodeError for roots that were never added,
// and CycleError if the closure contains a cycle.
func (g *Graph) OrderFor(roots ...string) ([]string, error) {
	for _, root := range roots {
		if !g.nodeSet[root] {
			return nil, &UnknownNodeError{Name: root}
		}
	}

	// Collect the dependency closure by walking incoming edges.
	inClosure := make(map[string]bool)
	stack := append([]string(nil), roots...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if inClosure[node] {
			continue
		}
		inClosure[node] = true
		stack = append(stack, g.incoming[node]...)
	}

	// Preserve insertion order within the closure.
	subset := make([]string, 0, len(inClosure))
	for _, node := range g.nodes {
		if inClosure[node] {
			subset = append(subset, node)
		}
	}

	return g.sortSubset(subset)
}

// sortSubset runs Kahn's algorithm restricted to the given nodes.
// Edges to nodes outside the subset are ignored.
func (g *Graph) sortSubset(subset []string) ([]string, error) {
	if len(subset) == 0 {
		return nil, nil
	}

	included := make(map[string]bool, len(subset))
	for _, node := range subset {
		included[node] = true
	}

	// Compute in-degrees within the subset.
	inDegree := make(map[string]int, len(subset))
	for _, node := range subset {
		inDegree[node] = 0
	}
	for from, neighbors := range g.adjacency {
		if !included[from] {
			continue
		}
		for _, neighbor := range neighbors {
			if included[neighbor] {
				inDegree[neighbor]++
			}
		}
	}

	// Seed the queue with nodes that have no incoming edges, in insertion order.
	queue := make([]string, 0)
	for _, node := range subset {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range g.adjacency[node] {
			if !included[neighbor] {
				continue
			}
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(result) != len(subset) {
		// Remaining nodes with non-zero in-degree form the cycle.
		var cycleNodes []string
		for _, node := range subset {
			if inDegree[node] > 0 {
				cycleNodes = append(cycleNodes, node)
			}
		}
		return nil, &CycleError{Cycle: cycleNodes}
	}

	return result, nil
}
