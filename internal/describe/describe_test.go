package describe

import (
	"math/big"
	"strings"
	"testing"

	"proposalScope/internal/graph"
	"proposalScope/internal/model"
	"proposalScope/internal/semantics"
)

const (
	eoaAddr      = "0x1111111111111111111111111111111111111111"
	proxyAddr    = "0x2222222222222222222222222222222222222222"
	tokenAddr    = "0x3333333333333333333333333333333333333333"
	masterCopy   = "0xd9db270c1b5e3bd161e8c8503c55ceabee709552"
	governorAddr = "0xf07ded9dc292157749b6fd268e37df6ea38395b9"
)

func TestDescribeEmptyGraph(t *testing.T) {
	g := graph.Build(nil)
	got := Describe(g, graph.ComputeMetrics(g, 0), nil, semantics.DefaultRegistry())

	want := "The trace contains no contract interactions."
	if got != want {
		t.Fatalf("empty graph description = %q, want %q", got, want)
	}
}

func TestDescribeGovernanceTrace(t *testing.T) {
	g := graph.Build(governanceRecords())
	origin := &model.CallEndpoint{From: eoaAddr, To: proxyAddr}
	got := Describe(g, graph.ComputeMetrics(g, 2), origin, semantics.DefaultRegistry())

	wantClauses := []string{
		"The proposal execution starts with address " + eoaAddr + " calling contract " + proxyAddr + ".",
		"Key function calls include execTransaction (Gnosis Safe: Multi-sig execution, 2 calls), propose (Governor: Proposal creation, 1 call), getPastVotes (Governor: Vote weight query, 1 call).",
		"Call kinds: CALL (2), DELEGATECALL (1), STATICCALL (1).",
		"Gnosis Safe: Master Copy (" + masterCopy + ") (called 1 time, functions: execTransaction)",
		"Overall the trace spans 5 nodes and 4 interactions; graph depth 2, breadth 3, maximum call depth 2.",
		"Representative call paths: 0x22222222... -> Arbitrum Governor calls propose (depth 2); 0x11111111... -> 0x22222222... calls execTransaction (depth 0).",
		"The trace uses DELEGATECALL into Gnosis Safe: Master Copy, indicating a proxy pattern",
		"STATICCALL entries read contract state without modifying it.",
		"Together these show a standard DAO governance flow",
	}
	lastIndex := -1
	for _, clause := range wantClauses {
		idx := strings.Index(got, clause)
		if idx < 0 {
			t.Fatalf("description missing clause %q\nfull text: %s", clause, got)
		}
		if idx < lastIndex {
			t.Errorf("clause %q appears out of order", clause)
		}
		lastIndex = idx
	}
}

func TestDescribeIsDeterministic(t *testing.T) {
	registry := semantics.DefaultRegistry()
	origin := &model.CallEndpoint{From: eoaAddr, To: proxyAddr}

	var first string
	for i := 0; i < 5; i++ {
		g := graph.Build(governanceRecords())
		got := Describe(g, graph.ComputeMetrics(g, 2), origin, registry)
		if i == 0 {
			first = got
			continue
		}
		if got != first {
			t.Fatalf("run %d diverged:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestDescribeOriginFallsBackToFirstRecord(t *testing.T) {
	records := []model.CallRecord{
		rec(eoaAddr, proxyAddr, model.KindCall, 0, "transfer(address,uint256)"),
	}
	g := graph.Build(records)
	got := Describe(g, graph.ComputeMetrics(g, 0), nil, semantics.DefaultRegistry())

	wantPrefix := "The proposal execution starts with address " + eoaAddr + " calling contract " + proxyAddr + "."
	if !strings.HasPrefix(got, wantPrefix) {
		t.Fatalf("description = %q, want prefix %q", got, wantPrefix)
	}
}

func TestDescribeKnownOrigin(t *testing.T) {
	records := []model.CallRecord{
		rec(masterCopy, governorAddr, model.KindCall, 0, "propose(address[],uint256[],bytes[],string)"),
	}
	g := graph.Build(records)
	origin := &model.CallEndpoint{From: masterCopy, To: governorAddr}
	got := Describe(g, graph.ComputeMetrics(g, 0), origin, semantics.DefaultRegistry())

	want := "starts with Gnosis Safe: Master Copy (" + masterCopy + ") calling Arbitrum Governor (" + governorAddr + ")."
	if !strings.Contains(got, want) {
		t.Fatalf("description %q missing %q", got, want)
	}
}

func TestDescribeGovernanceVariants(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		want      string
		absent    string
	}{
		{
			name:      "multisig only",
			signature: "execTransaction(address,uint256,bytes)",
			want:      "initiated through a multisig wallet",
			absent:    "creation stage of a DAO governance flow",
		},
		{
			name:      "propose only",
			signature: "propose(address[],uint256[],bytes[],string)",
			want:      "the creation stage of a DAO governance flow",
			absent:    "multisig wallet",
		},
		{
			name:      "neither",
			signature: "transfer(address,uint256)",
			want:      "",
			absent:    "governance flow",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.Build([]model.CallRecord{
				rec(eoaAddr, tokenAddr, model.KindCall, 0, tt.signature),
			})
			got := Describe(g, graph.ComputeMetrics(g, 0), nil, semantics.DefaultRegistry())
			if tt.want != "" && !strings.Contains(got, tt.want) {
				t.Fatalf("description %q missing %q", got, tt.want)
			}
			if strings.Contains(got, tt.absent) {
				t.Fatalf("description %q should not contain %q", got, tt.absent)
			}
		})
	}
}

func TestDescribeUnnamedFunctionsOmitClause(t *testing.T) {
	g := graph.Build([]model.CallRecord{
		rec(eoaAddr, proxyAddr, model.KindCall, 0, ""),
		rec(proxyAddr, tokenAddr, model.KindCall, 1, ""),
	})
	got := Describe(g, graph.ComputeMetrics(g, 1), nil, semantics.DefaultRegistry())

	if strings.Contains(got, "Key function calls") {
		t.Fatalf("description %q should omit the function clause", got)
	}
	if !strings.Contains(got, "Call kinds: CALL (2).") {
		t.Fatalf("description %q missing kind clause", got)
	}
}

func TestDescribeDelegateCallWithoutKnownTarget(t *testing.T) {
	g := graph.Build([]model.CallRecord{
		rec(proxyAddr, tokenAddr, model.KindDelegateCall, 0, ""),
	})
	got := Describe(g, graph.ComputeMetrics(g, 0), nil, semantics.DefaultRegistry())

	want := "The trace uses DELEGATECALL, indicating a proxy pattern"
	if !strings.Contains(got, want) {
		t.Fatalf("description %q missing %q", got, want)
	}
	if strings.Contains(got, "DELEGATECALL into") {
		t.Fatalf("description %q names a target for an unknown implementation", got)
	}
}

func TestDescribeCentralNodesTruncated(t *testing.T) {
	caller := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	targets := []string{
		"0x4141414141414141414141414141414141414141",
		"0x4242424242424242424242424242424242424242",
		"0x4343434343434343434343434343434343434343",
		"0x4444444444444444444444444444444444444444",
		"0x4545454545454545454545454545454545454545",
		"0x4646464646464646464646464646464646464646",
	}

	records := make([]model.CallRecord, 0, len(targets))
	for _, target := range targets {
		records = append(records, rec(caller, target, model.KindCall, 1, ""))
	}

	g := graph.Build(records)
	got := Describe(g, graph.ComputeMetrics(g, 1), nil, semantics.DefaultRegistry())

	// Ties rank in first-seen order, so the fifth target is the last
	// one listed and the sixth is cut.
	if !strings.Contains(got, "0x45454545") {
		t.Fatalf("description %q missing the fifth central node", got)
	}
	if strings.Contains(got, "0x46464646") {
		t.Fatalf("description %q lists more than five central nodes", got)
	}
}

// governanceRecords models a Safe proxy executing a Governor proposal
// creation: EOA -> proxy -> master copy (delegate) plus the proxied
// propose call and one read-only vote weight query.
func governanceRecords() []model.CallRecord {
	return []model.CallRecord{
		rec(eoaAddr, proxyAddr, model.KindCall, 0, "execTransaction(address,uint256,bytes,uint8,uint256,uint256,uint256,address,address,bytes)"),
		rec(proxyAddr, masterCopy, model.KindDelegateCall, 1, "execTransaction(address,uint256,bytes,uint8,uint256,uint256,uint256,address,address,bytes)"),
		rec(proxyAddr, governorAddr, model.KindCall, 2, "propose(address[],uint256[],bytes[],string)"),
		rec(proxyAddr, tokenAddr, model.KindStaticCall, 2, "getPastVotes(address,uint256)"),
	}
}

func rec(from, to string, kind model.CallKind, depth int, signature string) model.CallRecord {
	return model.CallRecord{
		From:              from,
		To:                to,
		Kind:              kind,
		Value:             big.NewInt(0),
		Depth:             depth,
		FunctionSignature: signature,
	}
}
