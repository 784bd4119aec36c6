package plan

import (
	"fmt"
	"strings"
)

// Outline renders the containment hierarchy as an indented bullet list,
// two spaces per level. Rendering never mutates the graph; the same graph
// always renders to the same bytes.
func (g *Graph) Outline(req *OutlineRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	entries := g.OutlineEntries()
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		core := g.nodes[entry.ID].Core()
		line := fmt.Sprintf("%s- %s: %s", strings.Repeat("  ", entry.Depth), core.ID, core.Description)
		if req.IncludeStatus {
			line = fmt.Sprintf("%s (%s)", line, core.Status)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// Mermaid renders the edge set as a mermaid flowchart. ComponentOf edges
// draw solid, DependsOn edges dashed.
func (g *Graph) Mermaid(req *MermaidRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	lines := make([]string, 0, len(g.edges)+1)
	lines = append(lines, "graph TD")
	for _, e := range g.edges {
		arrow := "-->"
		if e.Kind == DependsOn {
			arrow = "-.>"
		}
		src, dst := e.Src, e.Dst
		if req.IncludeDescriptions {
			src = g.mermaidLabel(e.Src)
			dst = g.mermaidLabel(e.Dst)
		}
		lines = append(lines, fmt.Sprintf("    %s %s %s", src, arrow, dst))
	}
	return strings.Join(lines, "\n"), nil
}

// mermaidLabel renders an endpoint, attaching the description only when
// the id resolves to a node. Dangling dependency targets render bare.
func (g *Graph) mermaidLabel(id string) string {
	if node, ok := g.nodes[id]; ok {
		return fmt.Sprintf("%s[%s]", id, node.Core().Description)
	}
	return id
}

// Graphviz renders the edge set as a DOT digraph. DependsOn edges carry
// style=dashed; descriptions become label attributes on request.
func (g *Graph) Graphviz(req *GraphvizRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	lines := make([]string, 0, len(g.edges)+2)
	lines = append(lines, "digraph {")
	for _, e := range g.edges {
		var b strings.Builder
		fmt.Fprintf(&b, "    %q", e.Src)
		if req.IncludeDescriptions {
			if node, ok := g.nodes[e.Src]; ok {
				fmt.Fprintf(&b, " [label=%q]", node.Core().Description)
			}
		}
		fmt.Fprintf(&b, " -> %q", e.Dst)
		if attrs := g.dotEdgeAttrs(e, req.IncludeDescriptions); attrs != "" {
			fmt.Fprintf(&b, " [%s]", attrs)
		}
		lines = append(lines, b.String())
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n"), nil
}

func (g *Graph) dotEdgeAttrs(e Edge, includeDescriptions bool) string {
	var attrs []string
	if includeDescriptions {
		if node, ok := g.nodes[e.Dst]; ok {
			attrs = append(attrs, fmt.Sprintf("label=%q", node.Core().Description))
		}
	}
	if e.Kind == DependsOn {
		attrs = append(attrs, "style=dashed")
	}
	return strings.Join(attrs, " ")
}
