package model

import (
	"fmt"
	"math/big"
)

// ArtifactNode is one graph node in the persisted artifact form.
type ArtifactNode struct {
	Address   string `json:"address"`
	Label     string `json:"label,omitempty"`
	InDegree  int    `json:"in_degree"`
	OutDegree int    `json:"out_degree"`
}

// ArtifactEdge is one call edge in the persisted artifact form. Value
// is a decimal string so arbitrary wei amounts survive the round
// trip through JSON and SQL.
type ArtifactEdge struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Kind      CallKind `json:"kind"`
	Value     string   `json:"value"`
	Function  string   `json:"function,omitempty"`
	Selector  string   `json:"selector,omitempty"`
	Signature string   `json:"signature,omitempty"`
	Depth     int      `json:"depth"`
	Gas       uint64   `json:"gas,omitempty"`
	GasUsed   uint64   `json:"gas_used,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// EdgeFromRecord converts a normalized call record into its artifact
// form. Edges without a resolvable function name omit the field
// rather than storing the "unknown" placeholder.
func EdgeFromRecord(record CallRecord) ArtifactEdge {
	value := "0"
	if record.Value != nil {
		value = record.Value.String()
	}
	function := ""
	if record.Named() {
		function = record.FunctionName()
	}
	return ArtifactEdge{
		From:      record.From,
		To:        record.To,
		Kind:      record.Kind,
		Value:     value,
		Function:  function,
		Selector:  record.FunctionSelector,
		Signature: record.FunctionSignature,
		Depth:     record.Depth,
		Gas:       record.Gas,
		GasUsed:   record.GasUsed,
		Error:     record.Error,
	}
}

// Record converts the artifact edge back into a call record.
func (e ArtifactEdge) Record() (CallRecord, error) {
	value := new(big.Int)
	if e.Value != "" {
		parsed, ok := new(big.Int).SetString(e.Value, 10)
		if !ok {
			return CallRecord{}, fmt.Errorf("invalid edge value %q", e.Value)
		}
		value = parsed
	}
	return CallRecord{
		From:              e.From,
		To:                e.To,
		Kind:              e.Kind,
		Value:             value,
		Gas:               e.Gas,
		GasUsed:           e.GasUsed,
		Depth:             e.Depth,
		FunctionSelector:  e.Selector,
		FunctionSignature: e.Signature,
		Error:             e.Error,
	}, nil
}

// GraphArtifact is the persisted output of one analysis run. It is
// self-contained: the graph can be rebuilt from the edge list without
// the original trace document.
type GraphArtifact struct {
	TraceID     string         `json:"trace_id,omitempty"`
	GeneratedAt string         `json:"generated_at,omitempty"`
	Origin      *CallEndpoint  `json:"origin,omitempty"`
	Nodes       []ArtifactNode `json:"nodes"`
	Edges       []ArtifactEdge `json:"edges"`
	Metrics     GraphMetrics   `json:"metrics"`
	Description string         `json:"description,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
}
