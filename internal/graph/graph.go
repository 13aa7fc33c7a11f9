package graph

import (
	"fmt"

	"proposalScope/internal/model"
)

// CallGraph is a directed multigraph over contract addresses. Nodes
// and edges keep first-seen order so every downstream output is
// stable across runs on identical input. A graph is immutable once
// built.
type CallGraph struct {
	nodes     []string
	nodeIndex map[string]int
	edges     []model.CallRecord
	out       [][]int
	in        [][]int
}

// Build constructs a call graph in a single pass over the record
// sequence. Both endpoints are canonicalized to lowercase, missing
// nodes are inserted in first-seen order, and every record becomes
// its own edge: parallel calls between the same pair stay distinct.
// An empty sequence yields an empty graph, not an error.
func Build(records []model.CallRecord) *CallGraph {
	g := &CallGraph{nodeIndex: make(map[string]int, len(records))}
	for _, record := range records {
		record.From = model.CanonicalAddress(record.From)
		record.To = model.CanonicalAddress(record.To)

		fromIdx := g.addNode(record.From)
		toIdx := g.addNode(record.To)

		edgeIdx := len(g.edges)
		g.edges = append(g.edges, record)
		g.out[fromIdx] = append(g.out[fromIdx], edgeIdx)
		g.in[toIdx] = append(g.in[toIdx], edgeIdx)
	}
	return g
}

func (g *CallGraph) addNode(addr string) int {
	if idx, ok := g.nodeIndex[addr]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, addr)
	g.nodeIndex[addr] = idx
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return idx
}

// NodeCount returns the number of distinct addresses in the graph.
func (g *CallGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges, parallel edges included.
func (g *CallGraph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns the node addresses in first-seen order. The slice is
// shared; callers must not modify it.
func (g *CallGraph) Nodes() []string {
	return g.nodes
}

// Edges returns the canonicalized edge records in insertion order.
// The slice is shared; callers must not modify it.
func (g *CallGraph) Edges() []model.CallRecord {
	return g.edges
}

// NodeIndex resolves an address to its node index.
func (g *CallGraph) NodeIndex(addr string) (int, bool) {
	idx, ok := g.nodeIndex[model.CanonicalAddress(addr)]
	return idx, ok
}

// InDegree returns the number of edges entering the node, counting
// parallel edges individually.
func (g *CallGraph) InDegree(node int) int {
	return len(g.in[node])
}

// OutDegree returns the number of edges leaving the node.
func (g *CallGraph) OutDegree(node int) int {
	return len(g.out[node])
}

// FromArtifact rebuilds a call graph from a persisted artifact's edge
// list and checks that the stored node set matches the rebuilt one.
func FromArtifact(artifact model.GraphArtifact) (*CallGraph, error) {
	records := make([]model.CallRecord, 0, len(artifact.Edges))
	for i, edge := range artifact.Edges {
		record, err := edge.Record()
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		records = append(records, record)
	}

	g := Build(records)

	if len(artifact.Nodes) > 0 {
		if len(artifact.Nodes) != g.NodeCount() {
			return nil, fmt.Errorf("artifact lists %d nodes, edges produce %d", len(artifact.Nodes), g.NodeCount())
		}
		for _, node := range artifact.Nodes {
			if _, ok := g.NodeIndex(node.Address); !ok {
				return nil, fmt.Errorf("artifact node %s not present in edges", node.Address)
			}
		}
	}

	return g, nil
}
