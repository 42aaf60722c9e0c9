package graph

import (
	"strconv"
	"strings"

	"github.com/25smoking/bamparse/internal/forensics"
)

// Build turns an extraction result into an ExecutionGraph. An executable run
// by several users becomes a single node with one edge per user.
func Build(result forensics.BamResult) *ExecutionGraph {
	g := NewExecutionGraph()

	for _, entry := range result {
		userID := "USER_" + entry.SID
		user := g.AddNode(userID, entry.SID, NodeUser)
		user.Props["executables"] = strconv.Itoa(len(entry.Executable))

		for _, rec := range entry.Executable {
			// 路径不区分大小写
			exeID := "EXE_" + strings.ToLower(rec.Path)
			g.AddNode(exeID, rec.Path, NodeExecutable)
			g.AddEdge(userID, exeID, rec.Date)
		}
	}
	return g
}
