// Package viz renders graph artifacts as Graphviz DOT, with an
// optional image pass through the dot binary when it is installed.
package viz

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"proposalScope/internal/model"
)

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// WriteDOT serializes the artifact's graph in DOT form. Node and edge
// order follow the artifact, so output is stable for identical input.
func WriteDOT(w io.Writer, artifact *model.GraphArtifact) error {
	writer := bufio.NewWriter(w)

	title := artifact.TraceID
	if title == "" {
		title = "trace"
	}
	fmt.Fprintf(writer, "digraph %q {\n", title)
	fmt.Fprintln(writer, "  rankdir=LR;")
	fmt.Fprintln(writer, "  node [shape=box, style=rounded, fontsize=10];")
	fmt.Fprintln(writer, "  edge [fontsize=9];")
	fmt.Fprintln(writer)

	ids := make(map[string]string, len(artifact.Nodes))
	for i, node := range artifact.Nodes {
		id := fmt.Sprintf("n%d", i)
		ids[node.Address] = id

		label := labelEscaper.Replace(shortLabel(node.Address))
		if node.Label != "" {
			label = labelEscaper.Replace(node.Label) + `\n` + label
		}
		fmt.Fprintf(writer, "  %s [label=\"%s\"];\n", id, label)
	}
	fmt.Fprintln(writer)

	for _, edge := range artifact.Edges {
		fromID, ok := ids[edge.From]
		if !ok {
			return fmt.Errorf("edge references unknown node %s", edge.From)
		}
		toID, ok := ids[edge.To]
		if !ok {
			return fmt.Errorf("edge references unknown node %s", edge.To)
		}

		attrs := []string{fmt.Sprintf("style=%s", edgeStyle(edge.Kind))}
		if edge.Function != "" {
			attrs = append([]string{fmt.Sprintf("label=\"%s\"", labelEscaper.Replace(edge.Function))}, attrs...)
		}
		if edge.Error != "" {
			attrs = append(attrs, "color=red")
		}
		fmt.Fprintf(writer, "  %s -> %s [%s];\n", fromID, toID, strings.Join(attrs, ", "))
	}

	fmt.Fprintln(writer, "}")
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush dot output: %w", err)
	}
	return nil
}

// WriteDOTFile writes the DOT rendering to a file, creating the
// parent directory when needed.
func WriteDOTFile(path string, artifact *model.GraphArtifact) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dot file: %w", err)
	}
	if err := WriteDOT(file, artifact); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close dot file: %w", err)
	}
	return nil
}

func edgeStyle(kind model.CallKind) string {
	switch kind {
	case model.KindDelegateCall:
		return "dashed"
	case model.KindStaticCall:
		return "dotted"
	case model.KindCallCode:
		return "bold"
	default:
		return "solid"
	}
}

func shortLabel(addr string) string {
	if len(addr) > 14 {
		return addr[:8] + ".." + addr[len(addr)-4:]
	}
	return addr
}
