package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Graph is the directed network topology of a system model, held as an
// adjacency list keyed by uid projection.
type Graph struct {
	pid           uuid.UUID
	adjacencyList map[string][]string
}

// NewGraph returns an empty graph.
func NewGraph() (Graph, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return Graph{}, err
	}
	return Graph{pid, make(map[string][]string)}, nil
}

// BuildGraph materializes the inferred topology of a system model.
func BuildGraph(m *SystemModel) (Graph, error) {
	g, err := NewGraph()
	if err != nil {
		return Graph{}, err
	}
	for _, n := range m.Nodes() {
		if err := g.AddNode(n.Uid().Format(m.Style())); err != nil {
			return Graph{}, err
		}
	}
	for _, e := range m.Edges() {
		if err := g.AddDirectedEdge(e.Source, e.Target); err != nil {
			return Graph{}, err
		}
	}
	return g, nil
}

// PID returns the graph's process id.
func (g Graph) PID() uuid.UUID {
	return g.pid
}

// AddNode inserts a node. Nodes must be unique.
func (g *Graph) AddNode(n string) error {
	if _, exists := g.adjacencyList[n]; exists {
		return fmt.Errorf("node %s already exists in graph", n)
	}
	g.adjacencyList[n] = make([]string, 0)
	return nil
}

// AddDirectedEdge inserts an edge between existing nodes.
func (g *Graph) AddDirectedEdge(n1 string, n2 string) error {
	edges, exists := g.adjacencyList[n1]
	if !exists {
		return fmt.Errorf("start node %s does not exist in graph", n1)
	}
	if _, exists := g.adjacencyList[n2]; !exists {
		return fmt.Errorf("end node %s does not exist in graph", n2)
	}
	g.adjacencyList[n1] = append(edges, n2)
	return nil
}

// Successors returns the direct successors of a node.
func (g *Graph) Successors(n string) []string {
	if edges, exists := g.adjacencyList[n]; exists {
		return edges
	}
	return make([]string, 0)
}

// Nodes returns every node in sorted order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.adjacencyList))
	for n := range g.adjacencyList {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}
