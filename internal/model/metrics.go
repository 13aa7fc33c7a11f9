package model

// NodeDegree pairs a node address with its in-degree.
type NodeDegree struct {
	Address  string `json:"address"`
	InDegree int    `json:"in_degree"`
}

// GraphMetrics summarizes the structure of one call graph. Depth is
// the relaxation depth computed over the graph; MaxCallDepth is the
// deepest nesting level the tracer itself reported. The two measure
// different things and are never conflated.
type GraphMetrics struct {
	Nodes        int          `json:"nodes"`
	Edges        int          `json:"edges"`
	Depth        int          `json:"depth"`
	Breadth      int          `json:"breadth"`
	MaxCallDepth int          `json:"max_call_depth"`
	CentralNodes []NodeDegree `json:"central_nodes,omitempty"`
}
