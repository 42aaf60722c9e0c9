package graph

import (
	"fmt"
	"io"
	"strings"
)

// ExportDOT writes the graph in Graphviz DOT format to the writer
func (g *ExecutionGraph) ExportDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph BAM {"); err != nil {
		return err
	}

	// Default styles
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box, style=filled, fontname=\"Arial\"];")
	fmt.Fprintln(w, "  edge [fontname=\"Arial\", fontsize=10];")

	for _, node := range g.OrderedNodes() {
		color := "white"
		shape := "box"

		switch node.Type {
		case NodeUser:
			color = "#e1f5fe" // Light Blue
			shape = "ellipse"
		case NodeExecutable:
			color = "#f3e5f5" // Light Purple
			shape = "note"
		}

		fmt.Fprintf(w, "  \"%s\" [label=\"%s\", fillcolor=\"%s\", shape=\"%s\"];\n",
			escape(node.ID), escape(node.Label), color, shape)
	}

	for _, edge := range g.Edges {
		fmt.Fprintf(w, "  \"%s\" -> \"%s\" [label=\"%s\"];\n",
			escape(edge.SourceID), escape(edge.TargetID), escape(edge.Label))
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return err
	}
	return nil
}

// escape quotes a DOT string. Backslashes are frequent in Windows paths.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}
