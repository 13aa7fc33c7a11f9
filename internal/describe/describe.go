// Package describe renders an analyzed call graph as deterministic
// English prose. The output feeds a downstream audit prompt, so every
// clause is composed in a fixed order with stable tie-breaking: the
// same graph and tables always produce the same text.
package describe

import (
	"fmt"
	"sort"
	"strings"

	"proposalScope/internal/graph"
	"proposalScope/internal/model"
	"proposalScope/internal/semantics"
)

const (
	topFunctions    = 5
	topCentralNodes = 5
	maxNodeFuncs    = 3
	maxPaths        = 2
)

// Describe produces the structural description of one analyzed trace.
// An empty graph describes itself as having no interactions rather
// than failing.
func Describe(g *graph.CallGraph, metrics model.GraphMetrics, origin *model.CallEndpoint, registry *semantics.Registry) string {
	records := g.Edges()
	if len(records) == 0 {
		return "The trace contains no contract interactions."
	}

	var parts []string
	parts = append(parts, openingClause(records, origin, registry))

	counts, order, nodeFuncs := collectFunctions(records)
	if clause := functionClause(counts, order, registry); clause != "" {
		parts = append(parts, clause)
	}
	if clause := kindClause(records); clause != "" {
		parts = append(parts, clause)
	}
	if clause := centralClause(g.TopCentral(topCentralNodes), nodeFuncs, registry); clause != "" {
		parts = append(parts, clause)
	}

	parts = append(parts, fmt.Sprintf(
		"Overall the trace spans %d nodes and %d interactions; graph depth %d, breadth %d, maximum call depth %d.",
		metrics.Nodes, metrics.Edges, metrics.Depth, metrics.Breadth, metrics.MaxCallDepth))

	if clause := pathClause(records, registry); clause != "" {
		parts = append(parts, clause)
	}
	parts = append(parts, specialKindClauses(records, registry)...)
	if clause := governanceClause(records); clause != "" {
		parts = append(parts, clause)
	}

	return strings.Join(parts, " ")
}

// openingClause identifies the initiating call, falling back to the
// first record when the document had no transaction header.
func openingClause(records []model.CallRecord, origin *model.CallEndpoint, registry *semantics.Registry) string {
	from := records[0].From
	to := records[0].To
	if origin != nil {
		if origin.From != "" {
			from = origin.From
		}
		if origin.To != "" {
			to = origin.To
		}
	}

	fromDesc := "address " + from
	if annotation := registry.ClassifyAddress(from); annotation.Known() {
		fromDesc = fmt.Sprintf("%s (%s)", annotation.Name, from)
	}
	toDesc := "contract " + to
	if annotation := registry.ClassifyAddress(to); annotation.Known() {
		toDesc = fmt.Sprintf("%s (%s)", annotation.Name, to)
	}

	return fmt.Sprintf("The proposal execution starts with %s calling %s.", fromDesc, toDesc)
}

// collectFunctions counts named functions across the records and
// gathers, per target node, the distinct function names it was called
// with. All orderings are first-seen.
func collectFunctions(records []model.CallRecord) (map[string]int, []string, map[string][]string) {
	counts := make(map[string]int)
	var order []string
	nodeFuncs := make(map[string][]string)
	nodeSeen := make(map[string]map[string]bool)

	for _, record := range records {
		if !record.Named() {
			continue
		}
		name := record.FunctionName()
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++

		seen := nodeSeen[record.To]
		if seen == nil {
			seen = make(map[string]bool)
			nodeSeen[record.To] = seen
		}
		if !seen[name] {
			seen[name] = true
			nodeFuncs[record.To] = append(nodeFuncs[record.To], name)
		}
	}
	return counts, order, nodeFuncs
}

func functionClause(counts map[string]int, order []string, registry *semantics.Registry) string {
	if len(order) == 0 {
		return ""
	}

	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(a, b int) bool {
		return counts[ranked[a]] > counts[ranked[b]]
	})
	if len(ranked) > topFunctions {
		ranked = ranked[:topFunctions]
	}

	items := make([]string, 0, len(ranked))
	for _, name := range ranked {
		if label, ok := registry.ClassifyFunction(name); ok {
			items = append(items, fmt.Sprintf("%s (%s, %s)", name, label, plural(counts[name], "call")))
		} else {
			items = append(items, fmt.Sprintf("%s (%s)", name, plural(counts[name], "call")))
		}
	}
	return fmt.Sprintf("Key function calls include %s.", strings.Join(items, ", "))
}

// kindClause counts edges per call kind, reported in canonical enum
// order so the clause is stable.
func kindClause(records []model.CallRecord) string {
	counts := make(map[model.CallKind]int)
	for _, record := range records {
		counts[record.Kind]++
	}

	items := make([]string, 0, len(counts))
	for _, kind := range model.CallKinds() {
		if counts[kind] > 0 {
			items = append(items, fmt.Sprintf("%s (%d)", kind, counts[kind]))
		}
	}
	if len(items) == 0 {
		return ""
	}
	return fmt.Sprintf("Call kinds: %s.", strings.Join(items, ", "))
}

func centralClause(central []model.NodeDegree, nodeFuncs map[string][]string, registry *semantics.Registry) string {
	if len(central) == 0 {
		return ""
	}

	items := make([]string, 0, len(central))
	for _, node := range central {
		desc := "contract " + shortAddress(node.Address)
		if annotation := registry.ClassifyAddress(node.Address); annotation.Known() {
			desc = fmt.Sprintf("%s (%s)", annotation.Name, node.Address)
		}

		suffix := ""
		if funcs := nodeFuncs[node.Address]; len(funcs) > 0 {
			if len(funcs) > maxNodeFuncs {
				funcs = funcs[:maxNodeFuncs]
			}
			suffix = ", functions: " + strings.Join(funcs, ", ")
		}
		items = append(items, fmt.Sprintf("%s (called %s%s)", desc, times(node.InDegree), suffix))
	}
	return fmt.Sprintf("Central nodes: %s.", strings.Join(items, ", "))
}

// pathClause picks up to two representative calls: the deepest one,
// and the first one whose function is on the important list.
func pathClause(records []model.CallRecord, registry *semantics.Registry) string {
	deepest := 0
	for i, record := range records {
		if record.Depth > records[deepest].Depth {
			deepest = i
		}
	}

	picked := []int{deepest}
	important := registry.ImportantFunctions()
	for i, record := range records {
		if len(picked) >= maxPaths {
			break
		}
		if i == deepest {
			continue
		}
		if matchesImportant(record, important) {
			picked = append(picked, i)
		}
	}

	items := make([]string, 0, len(picked))
	for _, idx := range picked {
		record := records[idx]
		toDesc := shortPrefix(record.To)
		if annotation := registry.ClassifyAddress(record.To); annotation.Known() {
			toDesc = annotation.Name
		}
		items = append(items, fmt.Sprintf("%s -> %s calls %s (depth %d)",
			shortPrefix(record.From), toDesc, record.FunctionName(), record.Depth))
	}
	if len(items) == 0 {
		return ""
	}
	return fmt.Sprintf("Representative call paths: %s.", strings.Join(items, "; "))
}

func matchesImportant(record model.CallRecord, important []string) bool {
	if !record.Named() {
		return false
	}
	name := strings.ToLower(record.FunctionName())
	for _, candidate := range important {
		if strings.Contains(name, strings.ToLower(candidate)) {
			return true
		}
	}
	return false
}

// specialKindClauses emits the proxy-pattern narrative for
// DELEGATECALL and the read-only narrative for STATICCALL.
func specialKindClauses(records []model.CallRecord, registry *semantics.Registry) []string {
	hasDelegate := false
	hasStatic := false
	targetSet := make(map[string]bool)
	var targets []string

	for _, record := range records {
		switch record.Kind {
		case model.KindDelegateCall:
			hasDelegate = true
			if annotation := registry.ClassifyAddress(record.To); annotation.Known() && !targetSet[annotation.Name] {
				targetSet[annotation.Name] = true
				targets = append(targets, annotation.Name)
			}
		case model.KindStaticCall:
			hasStatic = true
		}
	}

	var clauses []string
	if hasDelegate {
		if len(targets) > 0 {
			sort.Strings(targets)
			clauses = append(clauses, fmt.Sprintf(
				"The trace uses DELEGATECALL into %s, indicating a proxy pattern where core logic runs in a delegated implementation contract.",
				strings.Join(targets, ", ")))
		} else {
			clauses = append(clauses,
				"The trace uses DELEGATECALL, indicating a proxy pattern where core logic runs in a delegated implementation contract.")
		}
	}
	if hasStatic {
		clauses = append(clauses, "STATICCALL entries read contract state without modifying it.")
	}
	return clauses
}

// governanceClause classifies the governance flow from the presence
// of multisig execution and proposal creation calls.
func governanceClause(records []model.CallRecord) string {
	hasExec := false
	hasPropose := false
	for _, record := range records {
		name := strings.ToLower(record.FunctionName())
		if strings.Contains(name, "exectransaction") {
			hasExec = true
		}
		if strings.Contains(name, "propose") {
			hasPropose = true
		}
	}

	switch {
	case hasExec && hasPropose:
		return "Together these show a standard DAO governance flow: a multisig wallet (Gnosis Safe) executes a transaction that creates a proposal on a Governor contract; the trace captures the proposal creation stage, not proposal execution."
	case hasExec:
		return "The trace includes a multisig execution (execTransaction), so the operation was initiated through a multisig wallet."
	case hasPropose:
		return "The trace includes proposal creation (propose), the creation stage of a DAO governance flow."
	default:
		return ""
	}
}

func shortAddress(addr string) string {
	if len(addr) > 18 {
		return addr[:10] + "..." + addr[len(addr)-8:]
	}
	return addr
}

func shortPrefix(addr string) string {
	if len(addr) > 10 {
		return addr[:10] + "..."
	}
	return addr
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func times(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}
