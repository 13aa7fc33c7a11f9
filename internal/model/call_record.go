package model

import (
	"math/big"
	"strings"
)

// CallEndpoint names the two sides of the initiating call.
type CallEndpoint struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CallRecord is one normalized message call from an execution trace.
// Addresses are canonical lowercase hex and Value is never nil once a
// record leaves the normalizer.
type CallRecord struct {
	From              string
	To                string
	Kind              CallKind
	Value             *big.Int
	Gas               uint64
	GasUsed           uint64
	Depth             int
	FunctionSelector  string
	FunctionSignature string
	Error             string
}

// FunctionName returns the best human-readable name for the call: the
// signature text before its parameter list, else the raw selector,
// else "unknown".
func (r CallRecord) FunctionName() string {
	if r.FunctionSignature != "" {
		if i := strings.Index(r.FunctionSignature, "("); i > 0 {
			return r.FunctionSignature[:i]
		}
		return r.FunctionSignature
	}
	if r.FunctionSelector != "" {
		return r.FunctionSelector
	}
	return "unknown"
}

// Named reports whether the call resolved to something better than the
// "unknown" placeholder.
func (r CallRecord) Named() bool {
	return r.FunctionName() != "unknown"
}
