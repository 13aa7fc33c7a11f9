package storage

import (
	"time"

	"proposalScope/internal/graph"
	"proposalScope/internal/model"
	"proposalScope/internal/semantics"
)

// BuildArtifact assembles the self-contained persisted form of one
// analyzed trace. Node labels come from the registry's known and
// system contract tables; everything else is carried over verbatim so
// the graph can be rebuilt from the edge list alone.
func BuildArtifact(traceID string, g *graph.CallGraph, metrics model.GraphMetrics, origin *model.CallEndpoint, description string, warnings []string, registry *semantics.Registry) *model.GraphArtifact {
	nodes := make([]model.ArtifactNode, 0, g.NodeCount())
	for i, addr := range g.Nodes() {
		node := model.ArtifactNode{
			Address:   addr,
			InDegree:  g.InDegree(i),
			OutDegree: g.OutDegree(i),
		}
		if annotation := registry.ClassifyAddress(addr); annotation.Known() {
			node.Label = annotation.Name
		}
		nodes = append(nodes, node)
	}

	edges := make([]model.ArtifactEdge, 0, g.EdgeCount())
	for _, record := range g.Edges() {
		edges = append(edges, model.EdgeFromRecord(record))
	}

	return &model.GraphArtifact{
		TraceID:     traceID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Origin:      origin,
		Nodes:       nodes,
		Edges:       edges,
		Metrics:     metrics,
		Description: description,
		Warnings:    warnings,
	}
}
