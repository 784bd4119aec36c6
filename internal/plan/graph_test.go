package plan

import (
	"testing"
)

func taskNode(id string, status Status, deps ...string) *Task {
	return &Task{
		NodeCore:  NodeCore{ID: id, Status: status, Priority: 1},
		DependsOn: deps,
	}
}

func TestGraph_AddEdgeDeduplicates(t *testing.T) {
	g := NewGraph()
	g.AddNode(taskNode("a", StatusPending))
	g.AddNode(taskNode("b", StatusPending))

	g.AddEdge("a", "b", DependsOn)
	g.AddEdge("a", "b", DependsOn)
	g.AddEdge("a", "b", ComponentOf)

	if got := len(g.Edges()); got != 2 {
		t.Errorf("len(Edges()) = %d, want 2 (same endpoints, distinct kinds)", got)
	}
	if got := len(g.Dependencies("a")); got != 1 {
		t.Errorf("len(Dependencies(a)) = %d, want 1", got)
	}
}

func TestGraph_AddNodeKeepsFirstPosition(t *testing.T) {
	g := NewGraph()
	g.AddNode(taskNode("a", StatusPending))
	g.AddNode(taskNode("b", StatusPending))
	g.AddNode(taskNode("a", StatusComplete))

	ids := g.NodeIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("NodeIDs() = %v, want [a b]", ids)
	}

	node, _ := g.Node("a")
	if node.Core().Status != StatusComplete {
		t.Errorf("re-added node was not replaced, status = %q", node.Core().Status)
	}
}

func TestGraph_EdgeTargetWithoutNode(t *testing.T) {
	g := NewGraph()
	g.AddNode(taskNode("a", StatusPending, "ghost"))
	g.AddEdge("a", "ghost", DependsOn)

	if _, ok := g.Node("ghost"); ok {
		t.Error("edge target must not create a node")
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
	deps := g.Dependencies("a")
	if len(deps) != 1 || deps[0] != "ghost" {
		t.Errorf("Dependencies(a) = %v, want [ghost]", deps)
	}
}

func TestGraph_AdjacencyFollowsInsertionOrder(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"p", "c1", "c2", "c3"} {
		g.AddNode(taskNode(id, StatusPending))
	}
	g.AddEdge("c2", "p", ComponentOf)
	g.AddEdge("c1", "p", ComponentOf)
	g.AddEdge("c3", "p", ComponentOf)

	children := g.Children("p")
	want := []string{"c2", "c1", "c3"}
	if len(children) != len(want) {
		t.Fatalf("Children(p) = %v, want %v", children, want)
	}
	for i := range want {
		if children[i] != want[i] {
			t.Errorf("Children(p)[%d] = %q, want %q", i, children[i], want[i])
		}
	}

	parents := g.Parents("c1")
	if len(parents) != 1 || parents[0] != "p" {
		t.Errorf("Parents(c1) = %v, want [p]", parents)
	}
}

func TestGraph_OutlineEntries(t *testing.T) {
	pg := buildFromString(t, `<plan version="1.0">
		<epic id="e1" status="pending">
			<story id="s1" status="pending">
				<task id="t1" status="pending"/>
				<task id="t2" status="pending"/>
			</story>
			<story id="s2" status="pending"/>
		</epic>
		<epic id="e2" status="pending"/>
	</plan>`)

	entries := pg.Graph().OutlineEntries()
	want := []OutlineEntry{
		{ID: "e1", Depth: 0},
		{ID: "s1", Depth: 1},
		{ID: "t1", Depth: 2},
		{ID: "t2", Depth: 2},
		{ID: "s2", Depth: 1},
		{ID: "e2", Depth: 0},
	}
	if len(entries) != len(want) {
		t.Fatalf("OutlineEntries() = %v, want %v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("OutlineEntries()[%d] = %v, want %v", i, entries[i], want[i])
		}
	}
}

func TestGraph_OutlineEntriesTerminatesOnCycle(t *testing.T) {
	g := NewGraph()
	g.AddNode(taskNode("root", StatusPending))
	g.AddNode(taskNode("a", StatusPending))
	g.AddNode(taskNode("b", StatusPending))
	g.AddEdge("a", "root", ComponentOf)
	g.AddEdge("b", "a", ComponentOf)
	g.AddEdge("a", "b", ComponentOf)

	entries := g.OutlineEntries()
	if len(entries) != 3 {
		t.Errorf("OutlineEntries() visited %d nodes, want 3", len(entries))
	}
}

func TestGraph_CopiesAreIndependent(t *testing.T) {
	g := NewGraph()
	g.AddNode(taskNode("a", StatusPending))
	g.AddNode(taskNode("b", StatusPending))
	g.AddEdge("a", "b", DependsOn)

	ids := g.NodeIDs()
	ids[0] = "mutated"
	edges := g.Edges()
	edges[0].Src = "mutated"

	if g.NodeIDs()[0] != "a" {
		t.Error("NodeIDs() exposed internal storage")
	}
	if g.Edges()[0].Src != "a" {
		t.Error("Edges() exposed internal storage")
	}
}
