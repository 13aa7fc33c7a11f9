package model

import (
	"encoding/json"
)

// TraceHeader carries the initiating transaction endpoints of a trace
// report.
type TraceHeader struct {
	Hash  string   `json:"hash,omitempty"`
	From  string   `json:"from"`
	To    string   `json:"to"`
	Value Quantity `json:"value,omitempty"`
}

// TraceCallEntry is one call in the flat processed shape. Numeric
// fields accept decimal, hex, and bare-number encodings.
type TraceCallEntry struct {
	Type              string   `json:"type"`
	From              string   `json:"from"`
	To                string   `json:"to"`
	Value             Quantity `json:"value,omitempty"`
	Gas               Quantity `json:"gas,omitempty"`
	GasUsed           Quantity `json:"gas_used,omitempty"`
	Depth             *int     `json:"depth,omitempty"`
	FunctionSelector  string   `json:"function_selector,omitempty"`
	FunctionSignature string   `json:"function_signature,omitempty"`
	Input             string   `json:"input,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// TraceFrame is one frame of a nested call tree as emitted by a
// callTracer-style tracer. Children stay raw so traversal can bound
// its own recursion and skip individual malformed frames. Both the
// child_calls spelling and the callTracer calls spelling are accepted.
type TraceFrame struct {
	Type       string            `json:"type"`
	From       string            `json:"from"`
	To         string            `json:"to"`
	Value      Quantity          `json:"value,omitempty"`
	Gas        Quantity          `json:"gas,omitempty"`
	GasUsed    Quantity          `json:"gasUsed,omitempty"`
	Input      string            `json:"input,omitempty"`
	Output     string            `json:"output,omitempty"`
	Error      string            `json:"error,omitempty"`
	ChildCalls []json.RawMessage `json:"child_calls,omitempty"`
	Calls      []json.RawMessage `json:"calls,omitempty"`
}

// Children returns the nested frames, preferring the child_calls
// field when both spellings are present.
func (f TraceFrame) Children() []json.RawMessage {
	if len(f.ChildCalls) > 0 {
		return f.ChildCalls
	}
	return f.Calls
}

// TraceSummary is the flat processed call list of a trace report.
// Calls stay raw so one malformed entry cannot fail the whole
// document.
type TraceSummary struct {
	TotalCalls int               `json:"total_calls"`
	MaxDepth   int               `json:"max_depth"`
	Calls      []json.RawMessage `json:"calls"`
}

// TraceDocument is a parsed trace report. A document may carry the
// flat processed shape (trace_summary, or summary in the older
// report layout), a nested call tree under trace_calls, or both; the
// flat shape wins when both are present.
type TraceDocument struct {
	Transaction *TraceHeader      `json:"original_transaction,omitempty"`
	Summary     *TraceSummary     `json:"trace_summary,omitempty"`
	SummaryAlt  *TraceSummary     `json:"summary,omitempty"`
	NestedCalls []json.RawMessage `json:"trace_calls,omitempty"`
}

// FlatSummary returns the flat call list, preferring trace_summary
// over the older summary spelling. Nil when the document carries only
// nested frames.
func (d *TraceDocument) FlatSummary() *TraceSummary {
	if d.Summary != nil {
		return d.Summary
	}
	return d.SummaryAlt
}
