package viz

import (
	"bytes"
	"strings"
	"testing"

	"proposalScope/internal/model"
)

func TestWriteDOT(t *testing.T) {
	artifact := testArtifact()

	var buf bytes.Buffer
	if err := WriteDOT(&buf, artifact); err != nil {
		t.Fatalf("WriteDOT: %v", err)
	}
	got := buf.String()

	want := []string{
		`digraph "0xabc" {`,
		`n0 [label="0x111111..1111"];`,
		`n1 [label="Gnosis Safe: Master Copy\n0xd9db27..9552"];`,
		`n0 -> n1 [label="execTransaction", style=solid];`,
		`n1 -> n2 [style=dashed];`,
		`n1 -> n0 [label="getPastVotes", style=dotted, color=red];`,
	}
	for _, fragment := range want {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q\nfull output:\n%s", fragment, got)
		}
	}
}

func TestWriteDOTDeterministic(t *testing.T) {
	artifact := testArtifact()

	var first, second bytes.Buffer
	if err := WriteDOT(&first, artifact); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteDOT(&second, artifact); err != nil {
		t.Fatalf("second write: %v", err)
	}
	if first.String() != second.String() {
		t.Fatal("repeated writes produced different output")
	}
}

func TestWriteDOTEscapesLabels(t *testing.T) {
	artifact := &model.GraphArtifact{
		Nodes: []model.ArtifactNode{
			{Address: "0x01", Label: `says "hi" \o/`},
			{Address: "0x02"},
		},
		Edges: []model.ArtifactEdge{
			{From: "0x01", To: "0x02", Kind: model.KindCall, Function: `fn"quoted"`},
		},
	}

	var buf bytes.Buffer
	if err := WriteDOT(&buf, artifact); err != nil {
		t.Fatalf("WriteDOT: %v", err)
	}
	got := buf.String()

	if !strings.Contains(got, `says \"hi\" \\o/`) {
		t.Errorf("node label not escaped:\n%s", got)
	}
	if !strings.Contains(got, `label="fn\"quoted\""`) {
		t.Errorf("edge label not escaped:\n%s", got)
	}
}

func TestWriteDOTRejectsUnknownEndpoint(t *testing.T) {
	artifact := &model.GraphArtifact{
		Nodes: []model.ArtifactNode{{Address: "0x01"}},
		Edges: []model.ArtifactEdge{{From: "0x01", To: "0x0missing", Kind: model.KindCall}},
	}
	if err := WriteDOT(&bytes.Buffer{}, artifact); err == nil {
		t.Fatal("expected error for edge with unknown endpoint")
	}
}

func testArtifact() *model.GraphArtifact {
	return &model.GraphArtifact{
		TraceID: "0xabc",
		Nodes: []model.ArtifactNode{
			{Address: "0x1111111111111111111111111111111111111111"},
			{Address: "0xd9db270c1b5e3bd161e8c8503c55ceabee709552", Label: "Gnosis Safe: Master Copy"},
			{Address: "0x2222222222222222222222222222222222222222"},
		},
		Edges: []model.ArtifactEdge{
			{From: "0x1111111111111111111111111111111111111111", To: "0xd9db270c1b5e3bd161e8c8503c55ceabee709552", Kind: model.KindCall, Function: "execTransaction"},
			{From: "0xd9db270c1b5e3bd161e8c8503c55ceabee709552", To: "0x2222222222222222222222222222222222222222", Kind: model.KindDelegateCall},
			{From: "0xd9db270c1b5e3bd161e8c8503c55ceabee709552", To: "0x1111111111111111111111111111111111111111", Kind: model.KindStaticCall, Function: "getPastVotes", Error: "execution reverted"},
		},
	}
}
