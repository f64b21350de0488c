package token

import "sort"

// Graph is the store's dependency graph: an edge parent→child means
// child resolved through parent. Cycle reporting and upstream walks
// feed explain tooling; the resolution engine itself never consults it.
type Graph struct {
	nodes   map[string]struct{}
	edges   map[string][]string // parent -> children (dependents)
	parents map[string][]string // child -> parents (dependencies)
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]struct{}),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph if not already present.
func (g *Graph) AddNode(id string) {
	if _, exists := g.nodes[id]; !exists {
		g.nodes[id] = struct{}{}
		g.edges[id] = []string{}
		g.parents[id] = []string{}
	}
}

// AddEdge adds a directed edge from parent to child (child depends on
// parent). Unknown nodes and duplicate edges are ignored; self-loops
// are kept so a token depending on itself still surfaces as a cycle.
func (g *Graph) AddEdge(parentID, childID string) {
	if _, exists := g.nodes[parentID]; !exists {
		return
	}
	if _, exists := g.nodes[childID]; !exists {
		return
	}

	if !containsID(g.edges[parentID], childID) {
		g.edges[parentID] = append(g.edges[parentID], childID)
	}
	if !containsID(g.parents[childID], parentID) {
		g.parents[childID] = append(g.parents[childID], parentID)
	}
}

// Parents returns the direct dependencies of a node.
func (g *Graph) Parents(id string) []string {
	return g.parents[id]
}

// Upstream returns all nodes upstream of the given node (its
// dependencies and their dependencies), sorted.
func (g *Graph) Upstream(id string) []string {
	upstream := make(map[string]bool)

	var mark func(nodeID string)
	mark = func(nodeID string) {
		for _, parentID := range g.parents[nodeID] {
			if !upstream[parentID] {
				upstream[parentID] = true
				mark(parentID)
			}
		}
	}
	mark(id)

	result := make([]string, 0, len(upstream))
	for nodeID := range upstream {
		result = append(result, nodeID)
	}
	sort.Strings(result)
	return result
}

// HasCycle returns true if the graph contains a cycle, along with the
// cycle path.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make(map[string]string)

	var cyclePath []string

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		recStack[id] = true

		for _, childID := range g.edges[id] {
			if !visited[childID] {
				path[childID] = id
				if dfs(childID) {
					return true
				}
			} else if recStack[childID] {
				// Found cycle, reconstruct path
				cyclePath = []string{childID}
				for curr := id; curr != childID; curr = path[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{childID}, cyclePath...)
				return true
			}
		}

		recStack[id] = false
		return false
	}

	for _, id := range ids {
		if !visited[id] {
			if dfs(id) {
				return true, cyclePath
			}
		}
	}

	return false, nil
}

func containsID(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
