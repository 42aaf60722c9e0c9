package graph

import (
	"bytes"
	"testing"

	"github.com/25smoking/bamparse/internal/forensics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = forensics.BamResult{
	{SID: "S-1-5-18", Executable: []forensics.ExecutableRecord{
		{Path: `C:\Windows\System32\cmd.exe`, Date: "2023-01-01 00:00:00"},
	}},
	{SID: "S-1-5-21-1-2-3-1001", Executable: []forensics.ExecutableRecord{
		{Path: `C:\WINDOWS\system32\CMD.EXE`, Date: "2023-11-14 22:13:20"},
		{Path: `C:\Tools\"odd".exe`, Date: "2023-11-14 22:13:20"},
	}},
	{SID: "S-1-5-90-0-1", Executable: []forensics.ExecutableRecord{}},
}

func TestBuild(t *testing.T) {
	g := Build(sample)

	require.Len(t, g.Nodes, 5)
	require.Len(t, g.Edges, 3)

	var ids []string
	for _, n := range g.OrderedNodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{
		"USER_S-1-5-18",
		`EXE_c:\windows\system32\cmd.exe`,
		"USER_S-1-5-21-1-2-3-1001",
		`EXE_c:\tools\"odd".exe`,
		"USER_S-1-5-90-0-1",
	}, ids)

	// First spelling wins for the label.
	assert.Equal(t, `C:\Windows\System32\cmd.exe`, g.Nodes[`EXE_c:\windows\system32\cmd.exe`].Label)
	assert.Equal(t, "2", g.Nodes["USER_S-1-5-21-1-2-3-1001"].Props["executables"])
	assert.Equal(t, "0", g.Nodes["USER_S-1-5-90-0-1"].Props["executables"])
	assert.Equal(t, "2023-11-14 22:13:20", g.Edges[1].Label)
}

func TestAddEdgeUnknownNode(t *testing.T) {
	g := NewExecutionGraph()
	g.AddNode("a", "a", NodeUser)
	g.AddEdge("a", "missing", "x")
	assert.Empty(t, g.Edges)
}

func TestExportDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Build(sample[:1]).ExportDOT(&buf))

	want := `digraph BAM {
  rankdir=LR;
  node [shape=box, style=filled, fontname="Arial"];
  edge [fontname="Arial", fontsize=10];
  "USER_S-1-5-18" [label="S-1-5-18", fillcolor="#e1f5fe", shape="ellipse"];
  "EXE_c:\\windows\\system32\\cmd.exe" [label="C:\\Windows\\System32\\cmd.exe", fillcolor="#f3e5f5", shape="note"];
  "USER_S-1-5-18" -> "EXE_c:\\windows\\system32\\cmd.exe" [label="2023-01-01 00:00:00"];
}
`
	assert.Equal(t, want, buf.String())
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\\b \"c\" \n`, escape("a\\b \"c\" \n"))
}
