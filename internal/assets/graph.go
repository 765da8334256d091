package assets

import (
	"fmt"
	"sort"
	"strings"
)

// CircularDependencyError is returned when asset dependencies form a cycle.
type CircularDependencyError struct {
	Cycle []string
}

func (e CircularDependencyError) Error() string {
	if len(e.Cycle) == 0 {
		return "circular asset dependency detected"
	}
	sequence := append(append([]string{}, e.Cycle...), e.Cycle[0])
	return fmt.Sprintf("circular asset dependency detected: %s", strings.Join(sequence, " -> "))
}

// graph tracks which handles must load before which.
type graph struct {
	nodes    map[string]struct{}
	incoming map[string]map[string]struct{}
	outgoing map[string]map[string]struct{}
}

func newGraph() *graph {
	return &graph{
		nodes:    make(map[string]struct{}),
		incoming: make(map[string]map[string]struct{}),
		outgoing: make(map[string]map[string]struct{}),
	}
}

func (g *graph) addNode(name string) {
	if _, exists := g.nodes[name]; exists {
		return
	}
	g.nodes[name] = struct{}{}
	g.incoming[name] = make(map[string]struct{})
	g.outgoing[name] = make(map[string]struct{})
}

// addEdge records that dependent needs dependency loaded first.
func (g *graph) addEdge(dependent, dependency string) {
	g.addNode(dependent)
	g.addNode(dependency)
	g.outgoing[dependent][dependency] = struct{}{}
	g.incoming[dependency][dependent] = struct{}{}
}

// detectCycle returns one cycle if present or nil when the graph is acyclic.
func (g *graph) detectCycle() []string {
	visited := make(map[string]bool)
	stack := make(map[string]bool)
	path := []string{}

	var cycle []string
	var dfs func(node string) bool
	dfs = func(node string) bool {
		visited[node] = true
		stack[node] = true
		path = append(path, node)

		for _, dependency := range sortedKeys(g.outgoing[node]) {
			if !visited[dependency] {
				if dfs(dependency) {
					return true
				}
			} else if stack[dependency] {
				idx := len(path) - 1
				for idx >= 0 && path[idx] != dependency {
					idx--
				}
				if idx >= 0 {
					cycle = append([]string{}, path[idx:]...)
					return true
				}
			}
		}

		stack[node] = false
		path = path[:len(path)-1]
		return false
	}

	for _, node := range sortedKeys(g.nodes) {
		if !visited[node] && dfs(node) {
			break
		}
	}
	return cycle
}

// order returns handles with dependencies first; ties break lexically.
func (g *graph) order() ([]string, error) {
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
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, dependent := range sortedKeys(g.incoming[current]) {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				queue = append(queue, dependent)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(g.nodes) {
		if cycle := g.detectCycle(); len(cycle) > 0 {
			return nil, CircularDependencyError{Cycle: cycle}
		}
		return nil, fmt.Errorf("asset graph contains unresolved handles")
	}
	return result, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
