package graph

import (
	"math/big"
	"reflect"
	"testing"

	"proposalScope/internal/model"
)

func TestBuildCountsNodesAndEdges(t *testing.T) {
	records := []model.CallRecord{
		call("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", model.KindCall),
		call("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", model.KindCall),
		call("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "0xcccccccccccccccccccccccccccccccccccccccc", model.KindDelegateCall),
	}

	g := Build(records)

	if g.NodeCount() != 3 {
		t.Fatalf("node count = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Fatalf("edge count = %d, want 3 (parallel edges preserved)", g.EdgeCount())
	}

	wantNodes := []string{
		"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"0xcccccccccccccccccccccccccccccccccccccccc",
	}
	if !reflect.DeepEqual(g.Nodes(), wantNodes) {
		t.Fatalf("nodes = %v, want %v", g.Nodes(), wantNodes)
	}
}

func TestBuildCollapsesAddressCase(t *testing.T) {
	records := []model.CallRecord{
		call("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB", model.KindCall),
		call("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", model.KindCall),
	}

	g := Build(records)

	if g.NodeCount() != 2 {
		t.Fatalf("node count = %d, want 2 (case-insensitive identity)", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("edge count = %d, want 2", g.EdgeCount())
	}
	for _, edge := range g.Edges() {
		if edge.From != "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" {
			t.Fatalf("edge endpoint not canonicalized: %s", edge.From)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	g := Build(nil)
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Fatalf("empty input should yield an empty graph, got %d nodes %d edges", g.NodeCount(), g.EdgeCount())
	}
	if g.Depth() != 0 || g.Breadth() != 0 {
		t.Fatalf("empty graph should have zero depth and breadth")
	}
	if len(g.CentralNodes()) != 0 {
		t.Fatalf("empty graph should have no central nodes")
	}
}

func TestFromArtifactRoundTrip(t *testing.T) {
	records := []model.CallRecord{
		call("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", model.KindCall),
		call("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "0xcccccccccccccccccccccccccccccccccccccccc", model.KindStaticCall),
	}
	records[0].Value = new(big.Int)
	records[0].Value.SetString("1000000000000000000000000", 10)

	original := Build(records)

	artifact := model.GraphArtifact{}
	for _, edge := range original.Edges() {
		artifact.Edges = append(artifact.Edges, model.EdgeFromRecord(edge))
	}
	for i, addr := range original.Nodes() {
		artifact.Nodes = append(artifact.Nodes, model.ArtifactNode{
			Address:   addr,
			InDegree:  original.InDegree(i),
			OutDegree: original.OutDegree(i),
		})
	}

	rebuilt, err := FromArtifact(artifact)
	if err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	if rebuilt.NodeCount() != original.NodeCount() || rebuilt.EdgeCount() != original.EdgeCount() {
		t.Fatalf("rebuilt graph differs: %d/%d vs %d/%d",
			rebuilt.NodeCount(), rebuilt.EdgeCount(), original.NodeCount(), original.EdgeCount())
	}
	if got := rebuilt.Edges()[0].Value.String(); got != "1000000000000000000000000" {
		t.Fatalf("edge value lost precision: %s", got)
	}
}

func TestFromArtifactRejectsNodeMismatch(t *testing.T) {
	artifact := model.GraphArtifact{
		Nodes: []model.ArtifactNode{
			{Address: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
		},
		Edges: []model.ArtifactEdge{
			{
				From:  "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
				To:    "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
				Kind:  model.KindCall,
				Value: "0",
			},
		},
	}

	if _, err := FromArtifact(artifact); err == nil {
		t.Fatalf("expected node/edge mismatch error")
	}
}

func call(from, to string, kind model.CallKind) model.CallRecord {
	return model.CallRecord{
		From:  from,
		To:    to,
		Kind:  kind,
		Value: big.NewInt(0),
	}
}
