package plan

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"
)

// canonicalNode is the hashing projection of a node. Story points and task
// dependencies ride along so that two graphs fingerprint equal exactly when
// their node and edge sets are equal.
type canonicalNode struct {
	ID          string   `json:"id"`
	Kind        NodeKind `json:"kind"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    int      `json:"priority"`
	Points      int      `json:"points,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty"`
}

type canonicalGraph struct {
	Nodes []canonicalNode `json:"nodes"`
	Edges []Edge          `json:"edges"`
}

// Canonicalize returns a canonical JSON representation of the graph with
// nodes sorted by id and edges by (src, dst, kind), independent of document
// order.
func (g *Graph) Canonicalize() ([]byte, error) {
	canonical := canonicalGraph{
		Nodes: make([]canonicalNode, 0, len(g.order)),
		Edges: make([]Edge, len(g.edges)),
	}
	for _, id := range g.order {
		node := g.nodes[id]
		core := node.Core()
		cn := canonicalNode{
			ID:          core.ID,
			Kind:        node.Kind(),
			Description: core.Description,
			Status:      core.Status,
			Priority:    core.Priority,
		}
		switch n := node.(type) {
		case *Story:
			cn.Points = n.Points
		case *Task:
			cn.DependsOn = n.DependsOn
		}
		canonical.Nodes = append(canonical.Nodes, cn)
	}
	copy(canonical.Edges, g.edges)

	sort.Slice(canonical.Nodes, func(i, j int) bool {
		return canonical.Nodes[i].ID < canonical.Nodes[j].ID
	})
	sort.Slice(canonical.Edges, func(i, j int) bool {
		a, b := canonical.Edges[i], canonical.Edges[j]
		if a.Src != b.Src {
			return a.Src < b.Src
		}
		if a.Dst != b.Dst {
			return a.Dst < b.Dst
		}
		return a.Kind < b.Kind
	})

	return json.Marshal(canonical)
}

// Fingerprint computes the blake3 hash of the canonicalized graph.
func (g *Graph) Fingerprint() (string, error) {
	canonical, err := g.Canonicalize()
	if err != nil {
		return "", fmt.Errorf("canonicalize graph: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash graph: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
