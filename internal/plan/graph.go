package plan

// EdgeKind distinguishes the two relation kinds held in a graph.
type EdgeKind string

const (
	// ComponentOf runs child to parent: task to story, story to epic.
	ComponentOf EdgeKind = "component_of"
	// DependsOn runs a task to a task id it cannot start before.
	DependsOn EdgeKind = "depends_on"
)

// Edge is one directed, kind-tagged relation. Dst may name an id with no
// node in the graph; dependency targets are not resolved at build time.
type Edge struct {
	Src  string   `json:"src"`
	Dst  string   `json:"dst"`
	Kind EdgeKind `json:"kind"`
}

// Graph holds the node arena and the tagged edge set for one plan build.
// Nodes and edges iterate in insertion order, which keeps repeated renders
// byte-identical. A graph is populated once and read afterwards; it is not
// safe for concurrent mutation.
type Graph struct {
	nodes      map[string]Node
	order      []string
	edges      []Edge
	edgeSet    map[Edge]struct{}
	childrenOf map[string][]string
	parentsOf  map[string][]string
	dependsOn  map[string][]string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[string]Node),
		edgeSet:    make(map[Edge]struct{}),
		childrenOf: make(map[string][]string),
		parentsOf:  make(map[string][]string),
		dependsOn:  make(map[string][]string),
	}
}

// AddNode stores a node under its id. Re-adding an id replaces the stored
// node but keeps its original iteration position.
func (g *Graph) AddNode(n Node) {
	id := n.Core().ID
	if _, exists := g.nodes[id]; !exists {
		g.order = append(g.order, id)
	}
	g.nodes[id] = n
}

// AddEdge records a directed edge. Duplicate (src, dst, kind) triples are
// ignored. The destination is not required to exist as a node.
func (g *Graph) AddEdge(src, dst string, kind EdgeKind) {
	e := Edge{Src: src, Dst: dst, Kind: kind}
	if _, dup := g.edgeSet[e]; dup {
		return
	}
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
	switch kind {
	case ComponentOf:
		g.childrenOf[dst] = append(g.childrenOf[dst], src)
		g.parentsOf[src] = append(g.parentsOf[src], dst)
	case DependsOn:
		g.dependsOn[src] = append(g.dependsOn[src], dst)
	}
}

// Node returns the node stored under id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NodeIDs returns all node ids in insertion order. The slice is a copy.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Edges returns the edge set in insertion order. The slice is a copy.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Children returns the ids with a ComponentOf edge into id, in insertion
// order.
func (g *Graph) Children(id string) []string {
	return g.childrenOf[id]
}

// Parents returns the ComponentOf targets of id, in insertion order.
func (g *Graph) Parents(id string) []string {
	return g.parentsOf[id]
}

// Dependencies returns the DependsOn targets of id, in insertion order.
func (g *Graph) Dependencies(id string) []string {
	return g.dependsOn[id]
}

// OutlineEntry is one row of the flattened containment hierarchy.
type OutlineEntry struct {
	ID    string
	Depth int
}

// OutlineEntries flattens the hierarchy depth-first in insertion order.
// Roots are nodes with no outgoing ComponentOf edge. The walk keeps an
// explicit stack, so document depth cannot exhaust the call stack, and a
// visited set ends it on accidentally cyclic input.
func (g *Graph) OutlineEntries() []OutlineEntry {
	type frame struct {
		id    string
		depth int
	}
	var entries []OutlineEntry
	visited := make(map[string]bool, len(g.order))
	for _, root := range g.order {
		if len(g.parentsOf[root]) > 0 {
			continue
		}
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[top.id] {
				continue
			}
			visited[top.id] = true
			entries = append(entries, OutlineEntry{ID: top.id, Depth: top.depth})
			children := g.childrenOf[top.id]
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, frame{id: children[i], depth: top.depth + 1})
			}
		}
	}
	return entries
}

// buildGraph flattens a parsed plan into a fresh graph.
func buildGraph(p *Plan) *Graph {
	g := NewGraph()
	for _, epic := range p.Epics {
		g.AddNode(epic)
		for _, story := range epic.Stories {
			g.AddNode(story)
			g.AddEdge(story.ID, epic.ID, ComponentOf)
			for _, task := range story.Tasks {
				g.AddNode(task)
				g.AddEdge(task.ID, story.ID, ComponentOf)
				for _, dep := range task.DependsOn {
					g.AddEdge(task.ID, dep, DependsOn)
				}
			}
		}
	}
	return g
}
