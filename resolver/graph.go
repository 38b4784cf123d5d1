/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver computes the effective value of every token for a theme.
package resolver

import (
	"fmt"
	"strings"

	"bennypowers.dev/gavanim/schema"
	"bennypowers.dev/gavanim/token"
)

// DependencyGraph represents a directed graph of token dependencies.
// Nodes are canonical dot paths; iteration follows insertion order so
// cycle reports and sort results are deterministic.
type DependencyGraph struct {
	order        []string
	dependencies map[string][]string
	dependents   map[string][]string
	nodes        map[string]bool
}

// Entry is a token's raw value for one theme, before references are
// substituted.
type Entry struct {
	Path  token.Path
	Type  string
	Value token.Value
}

// BuildDependencyGraph builds a dependency graph from theme entries.
// References that the index cannot resolve are not edges.
func BuildDependencyGraph(entries []Entry, idx *Index) *DependencyGraph {
	graph := &DependencyGraph{
		order:        make([]string, 0, len(entries)),
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		nodes:        make(map[string]bool, len(entries)),
	}

	for _, e := range entries {
		name := e.Path.DotPath()
		if !graph.nodes[name] {
			graph.nodes[name] = true
			graph.order = append(graph.order, name)
		}
	}

	for _, e := range entries {
		deps := extractDependencies(e, idx)
		if len(deps) > 0 {
			name := e.Path.DotPath()
			graph.dependencies[name] = deps
			for _, dep := range deps {
				graph.dependents[dep] = append(graph.dependents[dep], name)
			}
		}
	}

	return graph
}

// extractDependencies returns the canonical paths an entry refers to.
func extractDependencies(e Entry, idx *Index) []string {
	if e.Value.Kind != token.String || !strings.Contains(e.Value.Text, "{") {
		return nil
	}
	var deps []string
	for _, ref := range token.ExtractAllRefs(e.Value.Text) {
		if target, ok := idx.Resolve(ref); ok {
			deps = append(deps, target)
		}
	}
	return deps
}

// Dependencies returns the list of tokens that the given token depends on.
func (g *DependencyGraph) Dependencies(name string) []string {
	if deps, ok := g.dependencies[name]; ok {
		return deps
	}
	return []string{}
}

// Dependents returns the list of tokens that depend on the given token.
func (g *DependencyGraph) Dependents(name string) []string {
	if deps, ok := g.dependents[name]; ok {
		return deps
	}
	return []string{}
}

// HasCycle returns true if the graph contains a circular dependency.
func (g *DependencyGraph) HasCycle() bool {
	return g.FindCycle() != nil
}

// FindCycle returns the cycle path if one exists, or nil if no cycle.
// The returned path starts and ends with the same token.
func (g *DependencyGraph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, node := range g.order {
		if cycle := g.findCycleDFS(node, visited, recStack, nil); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (g *DependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		cycleStart := -1
		for i, n := range path {
			if n == node {
				cycleStart = i
				break
			}
		}
		if cycleStart == -1 {
			panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
		}
		cycle := append([]string{}, path[cycleStart:]...)
		return append(cycle, node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// TopologicalSort returns tokens in dependency order (dependencies first).
// Returns error if graph contains a cycle.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, fmt.Errorf("%w: %s", schema.ErrCircularReference, strings.Join(cycle, " -> "))
	}

	visited := make(map[string]bool, len(g.order))
	result := make([]string, 0, len(g.order))

	for _, node := range g.order {
		if !visited[node] {
			g.topologicalSortDFS(node, visited, &result)
		}
	}

	return result, nil
}

func (g *DependencyGraph) topologicalSortDFS(node string, visited map[string]bool, stack *[]string) {
	visited[node] = true

	for _, dep := range g.dependencies[node] {
		if !visited[dep] {
			g.topologicalSortDFS(dep, visited, stack)
		}
	}

	*stack = append(*stack, node)
}
