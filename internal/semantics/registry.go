package semantics

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"proposalScope/internal/model"
)

// ContractClass labels what is known about an address.
type ContractClass int

const (
	ClassUnknown ContractClass = iota
	ClassKnownContract
	ClassSystemContract
)

// Annotation is the classification result for one address. Name is
// empty when the address is unclassified.
type Annotation struct {
	Class ContractClass
	Name  string
	Kind  string
}

// Known reports whether the address resolved to anything.
func (a Annotation) Known() bool {
	return a.Class != ClassUnknown
}

// SystemContract is one entry of the system-address table.
type SystemContract struct {
	Kind string
	Name string
}

// FunctionPattern couples a function-name fragment with the semantic
// label attached to calls matching it.
type FunctionPattern struct {
	Pattern string
	Label   string
}

// Tables carries the annotation data for a registry. Zero-value
// fields leave the corresponding table empty.
type Tables struct {
	KnownContracts  map[string]string
	SystemContracts map[string]SystemContract
	Patterns        []FunctionPattern
	Selectors       map[string]string
	Important       []string
}

// Registry answers address and function classification queries from
// static tables. It is immutable after construction and safe for
// concurrent readers; tests swap in synthetic tables through
// NewRegistry.
type Registry struct {
	knownContracts  map[string]string
	systemContracts map[string]SystemContract
	patterns        []FunctionPattern
	selectors       map[string]string
	important       []string
}

// NewRegistry copies the given tables into an immutable registry.
// Address and selector keys are canonicalized so lookups are
// case-insensitive.
func NewRegistry(tables Tables) *Registry {
	r := &Registry{
		knownContracts:  make(map[string]string, len(tables.KnownContracts)),
		systemContracts: make(map[string]SystemContract, len(tables.SystemContracts)),
		patterns:        make([]FunctionPattern, len(tables.Patterns)),
		selectors:       make(map[string]string, len(tables.Selectors)),
		important:       make([]string, len(tables.Important)),
	}
	for addr, name := range tables.KnownContracts {
		r.knownContracts[model.CanonicalAddress(addr)] = name
	}
	for addr, entry := range tables.SystemContracts {
		r.systemContracts[model.CanonicalAddress(addr)] = entry
	}
	copy(r.patterns, tables.Patterns)
	for selector, signature := range tables.Selectors {
		r.selectors[strings.ToLower(selector)] = signature
	}
	copy(r.important, tables.Important)
	return r
}

// DefaultRegistry returns a registry loaded with the builtin tables.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultTables())
}

// ClassifyAddress resolves an address, checking in order: the
// Ethereum precompile range, the system-address table, then the
// known-contract table. Anything else is unclassified.
func (r *Registry) ClassifyAddress(addr string) Annotation {
	canonical := model.CanonicalAddress(addr)

	if value, ok := precompileValue(canonical); ok {
		annotation := Annotation{
			Class: ClassSystemContract,
			Kind:  KindPrecompile,
			Name:  "Ethereum Precompile " + value.String(),
		}
		if entry, ok := r.systemContracts[canonical]; ok {
			annotation.Name = entry.Name
		}
		return annotation
	}

	if entry, ok := r.systemContracts[canonical]; ok {
		return Annotation{Class: ClassSystemContract, Kind: entry.Kind, Name: entry.Name}
	}

	if name, ok := r.knownContracts[canonical]; ok {
		return Annotation{Class: ClassKnownContract, Name: name}
	}

	return Annotation{Class: ClassUnknown}
}

// precompileValue reports whether the 20-byte address value, read as
// a big-endian integer, falls in the precompile range 1..9.
func precompileValue(canonical string) (*big.Int, bool) {
	if !common.IsHexAddress(canonical) {
		return nil, false
	}
	value := new(big.Int).SetBytes(common.HexToAddress(canonical).Bytes())
	if value.Sign() > 0 && value.Cmp(big.NewInt(9)) <= 0 {
		return value, true
	}
	return nil, false
}

// ClassifyFunction matches a function name or signature against the
// pattern table with a case-insensitive substring test. The first
// pattern wins; table order is fixed and significant.
func (r *Registry) ClassifyFunction(name string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" || lowered == "unknown" {
		return "", false
	}
	if i := strings.Index(lowered, "("); i > 0 {
		lowered = lowered[:i]
	}
	for _, pattern := range r.patterns {
		if strings.Contains(lowered, strings.ToLower(pattern.Pattern)) {
			return pattern.Label, true
		}
	}
	return "", false
}

// ResolveSelector maps a 4-byte selector onto its canonical function
// signature, or "" when the selector is not in the table.
func (r *Registry) ResolveSelector(selector string) string {
	return r.selectors[strings.ToLower(strings.TrimSpace(selector))]
}

// ImportantFunctions returns the fixed list of function names that
// mark a call as a representative path.
func (r *Registry) ImportantFunctions() []string {
	return r.important
}
