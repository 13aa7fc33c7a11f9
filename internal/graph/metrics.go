package graph

import (
	"sort"

	"proposalScope/internal/model"
)

// roots returns the traversal start nodes: every indegree-zero node
// in first-seen order, or all nodes when a cycle leaves none.
func (g *CallGraph) roots() []int {
	roots := make([]int, 0, len(g.nodes))
	for i := range g.nodes {
		if len(g.in[i]) == 0 {
			roots = append(roots, i)
		}
	}
	if len(roots) == 0 {
		for i := range g.nodes {
			roots = append(roots, i)
		}
	}
	return roots
}

// Depth reports the longest hop distance reachable from the roots.
// True longest simple path is intractable on cyclic graphs, so this
// is a bounded relaxation: each root seeds a best-known hop count of
// 0 and improvements propagate along non-self-loop edges only when
// strictly larger. Strict improvement alone never settles on a cycle,
// so propagated values are additionally capped at the edge count,
// which keeps the walk finite and leaves acyclic paths exact.
func (g *CallGraph) Depth() int {
	if len(g.nodes) == 0 {
		return 0
	}

	limit := len(g.edges)
	maxDepth := 0
	for _, root := range g.roots() {
		best := make(map[int]int, len(g.nodes))
		best[root] = 0
		queue := []int{root}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			next := best[current] + 1
			if next > limit {
				continue
			}

			for _, edgeIdx := range g.out[current] {
				successor := g.nodeIndex[g.edges[edgeIdx].To]
				if successor == current {
					continue
				}
				recorded, seen := best[successor]
				if !seen || next > recorded {
					best[successor] = next
					queue = append(queue, successor)
				}
			}
		}

		for _, depth := range best {
			if depth > maxDepth {
				maxDepth = depth
			}
		}
	}
	return maxDepth
}

// Breadth reports the widest BFS layer over all root runs. Each run
// keeps its own visited set, skips self-loops, and counts the root
// layer itself, so any non-empty graph has breadth of at least 1.
func (g *CallGraph) Breadth() int {
	maxBreadth := 0
	for _, root := range g.roots() {
		visited := make(map[int]bool, len(g.nodes))
		visited[root] = true
		layer := []int{root}

		for len(layer) > 0 {
			if len(layer) > maxBreadth {
				maxBreadth = len(layer)
			}

			var next []int
			for _, current := range layer {
				for _, edgeIdx := range g.out[current] {
					successor := g.nodeIndex[g.edges[edgeIdx].To]
					if successor == current || visited[successor] {
						continue
					}
					visited[successor] = true
					next = append(next, successor)
				}
			}
			layer = next
		}
	}
	return maxBreadth
}

// CentralNodes ranks nodes by in-degree, descending, with parallel
// edges counted individually. Nodes nothing calls into are left out.
// Ties keep first-seen node order so repeated runs rank identically.
func (g *CallGraph) CentralNodes() []model.NodeDegree {
	ranked := make([]model.NodeDegree, 0, len(g.nodes))
	for i, addr := range g.nodes {
		if len(g.in[i]) == 0 {
			continue
		}
		ranked = append(ranked, model.NodeDegree{Address: addr, InDegree: len(g.in[i])})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].InDegree > ranked[b].InDegree
	})
	return ranked
}

// TopCentral returns at most k entries of the central ranking.
func (g *CallGraph) TopCentral(k int) []model.NodeDegree {
	ranked := g.CentralNodes()
	if k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// ComputeMetrics bundles the structural measurements of a built
// graph. maxCallDepth is the deepest tracer-reported call level,
// carried through from normalization; it measures the raw trace, not
// the graph.
func ComputeMetrics(g *CallGraph, maxCallDepth int) model.GraphMetrics {
	return model.GraphMetrics{
		Nodes:        g.NodeCount(),
		Edges:        g.EdgeCount(),
		Depth:        g.Depth(),
		Breadth:      g.Breadth(),
		MaxCallDepth: maxCallDepth,
		CentralNodes: g.CentralNodes(),
	}
}
