package report

import (
	"io"

	"github.com/25smoking/bamparse/internal/forensics"
	"github.com/25smoking/bamparse/internal/graph"
)

// WriteDOT writes the user to executable graph in Graphviz format.
func WriteDOT(w io.Writer, result forensics.BamResult) error {
	return graph.Build(result).ExportDOT(w)
}
