package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"proposalScope/internal/model"
)

// MaxNestingDepth bounds recursion into nested call frames. A frame
// tree deeper than this is truncated with a warning instead of being
// followed, so attacker-controlled nesting cannot grow the stack.
const MaxNestingDepth = 50

// SelectorResolver resolves a 4-byte selector ("0x" plus 8 hex chars)
// into a canonical function signature, or "" when unknown.
type SelectorResolver interface {
	ResolveSelector(selector string) string
}

// Options adjust normalization.
type Options struct {
	// Resolver fills FunctionSignature for entries that carry only a
	// selector. Nil leaves unresolved selectors bare.
	Resolver SelectorResolver
	// Logger receives per-entry warnings. The warnings are collected
	// in the Result either way.
	Logger *zap.Logger
}

// Result is the outcome of normalizing one trace document.
type Result struct {
	Records        []model.CallRecord
	Origin         *model.CallEndpoint
	MaxTracerDepth int
	Warnings       []string
}

// Parse decodes raw bytes into a trace document. It accepts the flat
// report object, a bare callTracer frame, or an array of frames.
// Empty input parses as an empty document so an absent trace degrades
// to an empty analysis instead of an error.
func Parse(data []byte) (*model.TraceDocument, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &model.TraceDocument{}, nil
	}

	if trimmed[0] == '[' {
		var frames []json.RawMessage
		if err := json.Unmarshal(trimmed, &frames); err != nil {
			return nil, fmt.Errorf("parse trace document: %w", err)
		}
		return &model.TraceDocument{NestedCalls: frames}, nil
	}

	var doc model.TraceDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parse trace document: %w", err)
	}

	// A document that carries none of the report containers may be a
	// bare tracer frame; re-read it as one.
	if doc.FlatSummary() == nil && len(doc.NestedCalls) == 0 {
		var frame model.TraceFrame
		if err := json.Unmarshal(trimmed, &frame); err == nil && frameLike(frame) {
			doc.NestedCalls = []json.RawMessage{json.RawMessage(trimmed)}
		}
	}

	return &doc, nil
}

func frameLike(frame model.TraceFrame) bool {
	return frame.From != "" || frame.To != "" || frame.Type != "" || len(frame.Children()) > 0
}

// Normalize flattens a parsed trace document into the canonical call
// sequence. The flat processed shape wins when a document carries
// both it and raw nested frames. Malformed entries are skipped with a
// warning, never fatal, and a nil or empty document yields an empty
// result.
func Normalize(doc *model.TraceDocument, opts Options) Result {
	n := &normalizer{resolver: opts.Resolver, logger: opts.Logger}
	if n.logger == nil {
		n.logger = zap.NewNop()
	}

	if doc == nil {
		return n.finish()
	}

	if header := doc.Transaction; header != nil && (header.From != "" || header.To != "") {
		n.origin = &model.CallEndpoint{
			From: model.CanonicalAddress(header.From),
			To:   model.CanonicalAddress(header.To),
		}
	}

	summary := doc.FlatSummary()
	switch {
	case summary != nil && len(summary.Calls) > 0:
		for i, raw := range summary.Calls {
			n.flatEntry(i, raw)
		}
		// Some reports carry per-call depth only in the summary
		// header; fall back to it when the entries had none.
		if n.maxDepth == 0 && summary.MaxDepth > 0 {
			n.maxDepth = summary.MaxDepth
		}
	case len(doc.NestedCalls) > 0:
		for i, raw := range doc.NestedCalls {
			n.frame(fmt.Sprintf("%d", i), raw, 0)
		}
	}

	return n.finish()
}

type normalizer struct {
	resolver SelectorResolver
	logger   *zap.Logger

	records  []model.CallRecord
	origin   *model.CallEndpoint
	maxDepth int
	warnings []string
}

func (n *normalizer) finish() Result {
	return Result{
		Records:        n.records,
		Origin:         n.origin,
		MaxTracerDepth: n.maxDepth,
		Warnings:       n.warnings,
	}
}

func (n *normalizer) warnf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	n.warnings = append(n.warnings, message)
	n.logger.Warn("skip trace entry", zap.String("reason", message))
}

// flatEntry normalizes one call of the flat processed shape.
func (n *normalizer) flatEntry(index int, raw json.RawMessage) {
	var entry model.TraceCallEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		n.warnf("call %d: %v", index, err)
		return
	}

	depth := 0
	if entry.Depth != nil {
		if *entry.Depth < 0 {
			n.warnf("call %d: negative depth %d", index, *entry.Depth)
			return
		}
		depth = *entry.Depth
	}

	n.emit(fmt.Sprintf("call %d", index), entry, depth)
}

// frame normalizes one nested tracer frame and recurses into its
// children, bounded by MaxNestingDepth.
func (n *normalizer) frame(path string, raw json.RawMessage, depth int) {
	if depth >= MaxNestingDepth {
		n.warnf("frame %s: call tree exceeds %d nested frames, subtree truncated", path, MaxNestingDepth)
		return
	}

	var frame model.TraceFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		n.warnf("frame %s: %v", path, err)
		return
	}

	entry := model.TraceCallEntry{
		Type:    frame.Type,
		From:    frame.From,
		To:      frame.To,
		Value:   frame.Value,
		Gas:     frame.Gas,
		GasUsed: frame.GasUsed,
		Input:   frame.Input,
		Error:   frame.Error,
	}
	n.emit(fmt.Sprintf("frame %s", path), entry, depth)

	for i, child := range frame.Children() {
		n.frame(fmt.Sprintf("%s.%d", path, i), child, depth+1)
	}
}

// emit validates one carrier entry and appends the resulting record.
func (n *normalizer) emit(ref string, entry model.TraceCallEntry, depth int) {
	from := model.CanonicalAddress(entry.From)
	to := model.CanonicalAddress(entry.To)
	if from == "" || to == "" {
		n.warnf("%s: missing endpoint", ref)
		return
	}

	value := entry.Value.BigInt()
	if value.Sign() < 0 {
		n.warnf("%s: negative value %s", ref, value)
		return
	}

	gas, err := entry.Gas.Uint64()
	if err != nil {
		n.warnf("%s: gas: %v", ref, err)
		return
	}
	gasUsed, err := entry.GasUsed.Uint64()
	if err != nil {
		n.warnf("%s: gas_used: %v", ref, err)
		return
	}

	selector := normalizeSelector(entry.FunctionSelector)
	if selector == "" {
		selector = selectorFromInput(entry.Input)
	}
	signature := strings.TrimSpace(entry.FunctionSignature)
	if signature == "" && selector != "" && n.resolver != nil {
		signature = n.resolver.ResolveSelector(selector)
	}

	record := model.CallRecord{
		From:              from,
		To:                to,
		Kind:              model.ParseCallKind(entry.Type),
		Value:             value,
		Gas:               gas,
		GasUsed:           gasUsed,
		Depth:             depth,
		FunctionSelector:  selector,
		FunctionSignature: signature,
		Error:             entry.Error,
	}
	n.records = append(n.records, record)
	if depth > n.maxDepth {
		n.maxDepth = depth
	}
}

// normalizeSelector validates the "0x" + 8 hex chars selector form.
func normalizeSelector(selector string) string {
	selector = strings.ToLower(strings.TrimSpace(selector))
	if len(selector) != 10 || !strings.HasPrefix(selector, "0x") {
		return ""
	}
	if !isHex(selector[2:]) {
		return ""
	}
	return selector
}

// selectorFromInput derives the selector from raw calldata: the first
// four bytes of a 0x-prefixed input.
func selectorFromInput(input string) string {
	input = strings.TrimSpace(input)
	if len(input) < 10 || !strings.HasPrefix(input, "0x") {
		return ""
	}
	return normalizeSelector(input[:10])
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
