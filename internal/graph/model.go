package graph

type NodeType string

const (
	NodeUser       NodeType = "USER"
	NodeExecutable NodeType = "EXECUTABLE"
)

type Node struct {
	ID    string
	Label string
	Type  NodeType
	Props map[string]string
}

type Edge struct {
	SourceID string
	TargetID string
	Label    string // last execution time
}

// ExecutionGraph links users to the executables BAM saw them run.
// Nodes keep insertion order so exports are stable.
type ExecutionGraph struct {
	Nodes map[string]*Node
	Edges []*Edge
	order []string
}

func NewExecutionGraph() *ExecutionGraph {
	return &ExecutionGraph{
		Nodes: make(map[string]*Node),
		Edges: make([]*Edge, 0),
	}
}

func (g *ExecutionGraph) AddNode(id, label string, nType NodeType) *Node {
	if n, exists := g.Nodes[id]; exists {
		return n
	}
	n := &Node{
		ID:    id,
		Label: label,
		Type:  nType,
		Props: make(map[string]string),
	}
	g.Nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// AddEdge links two existing nodes; unknown endpoints are ignored.
func (g *ExecutionGraph) AddEdge(src, dst, label string) {
	if _, ok1 := g.Nodes[src]; ok1 {
		if _, ok2 := g.Nodes[dst]; ok2 {
			g.Edges = append(g.Edges, &Edge{
				SourceID: src,
				TargetID: dst,
				Label:    label,
			})
		}
	}
}

// OrderedNodes returns nodes in the order they were added.
func (g *ExecutionGraph) OrderedNodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.Nodes[id])
	}
	return nodes
}
