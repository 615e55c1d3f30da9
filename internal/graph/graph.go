package graph

import (
	"sort"
	"strings"
)

// DependencyGraph tracks which tags each component needs defined first.
type DependencyGraph struct {
	nodes    map[string]struct{}
	incoming map[string]map[string]struct{}
	outgoing map[string]map[string]struct{}
}

// New creates an empty dependency graph.
func New() *DependencyGraph {
	return &DependencyGraph{
		nodes:    make(map[string]struct{}),
		incoming: make(map[string]map[string]struct{}),
		outgoing: make(map[string]map[string]struct{}),
	}
}

// AddNode ensures the tag exists within the graph.
func (g *DependencyGraph) AddNode(tag string) {
	if _, exists := g.nodes[tag]; exists {
		return
	}

	g.nodes[tag] = struct{}{}
	g.incoming[tag] = make(map[string]struct{})
	g.outgoing[tag] = make(map[string]struct{})
}

// AddEdge records that dependent requires dependency.
func (g *DependencyGraph) AddEdge(dependent, dependency string) {
	g.AddNode(dependent)
	g.AddNode(dependency)

	g.outgoing[dependent][dependency] = struct{}{}
	g.incoming[dependency][dependent] = struct{}{}
}

// Cycles returns every distinct cycle reachable through a DFS back edge.
// Each cycle is rotated to start at its smallest tag, and the list is sorted.
func (g *DependencyGraph) Cycles() [][]string {
	visited := make(map[string]bool)
	stack := make(map[string]bool)
	path := []string{}
	seen := make(map[string]struct{})
	var cycles [][]string

	var dfs func(node string)
	dfs = func(node string) {
		visited[node] = true
		stack[node] = true
		path = append(path, node)

		for _, dependency := range g.Dependencies(node) {
			if !visited[dependency] {
				dfs(dependency)
				continue
			}
			if !stack[dependency] {
				continue
			}

			idx := len(path) - 1
			for idx >= 0 && path[idx] != dependency {
				idx--
			}
			cycle := canonical(path[idx:])
			key := strings.Join(cycle, "\x00")
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			cycles = append(cycles, cycle)
		}

		stack[node] = false
		path = path[:len(path)-1]
	}

	for _, node := range g.Nodes() {
		if !visited[node] {
			dfs(node)
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return strings.Join(cycles[i], " ") < strings.Join(cycles[j], " ")
	})
	return cycles
}

// TopologicalSort returns every node with dependencies before dependents.
// Ties break lexically. Nodes that sit on or behind a cycle cannot be ordered
// and are appended in lexical order.
func (g *DependencyGraph) TopologicalSort() []string {
	remaining := make(map[string]int, len(g.nodes))
	for node := range g.nodes {
		remaining[node] = len(g.outgoing[node])
	}

	queue := make([]string, 0, len(g.nodes))
	for node, deps := range remaining {
		if deps == 0 {
			queue = append(queue, node)
		}
	}
	sort.Strings(queue)

	result := make([]string, 0, len(g.nodes))
	placed := make(map[string]bool, len(g.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)
		placed[current] = true

		for _, dependent := range g.Dependents(current) {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				queue = append(queue, dependent)
				sort.Strings(queue)
			}
		}
	}

	for _, node := range g.Nodes() {
		if !placed[node] {
			result = append(result, node)
		}
	}
	return result
}

// Dependencies returns the sorted direct dependencies of a node.
func (g *DependencyGraph) Dependencies(node string) []string {
	return sortedKeys(g.outgoing[node])
}

// Dependents returns the sorted nodes that rely on the supplied node.
func (g *DependencyGraph) Dependents(node string) []string {
	return sortedKeys(g.incoming[node])
}

// Nodes returns every node in lexical order.
func (g *DependencyGraph) Nodes() []string {
	return sortedKeys(g.nodes)
}

// canonical rotates a cycle so that it starts at its smallest member.
func canonical(cycle []string) []string {
	start := 0
	for i, node := range cycle {
		if node < cycle[start] {
			start = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[start:]...)
	return append(out, cycle[:start]...)
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
