package tui

import (
	"fmt"
	"strings"

	"github.com/allenday/mtf/internal/plan"
)

// renderOutline renders the indented plan outline with the cursor
func (m BrowseModel) renderOutline() string {
	var b strings.Builder

	// Title
	title := m.styles.Title.Render("📋 Plan Browser")
	b.WriteString(title)
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(m.styles.Muted.Render("The plan graph is empty"))
		b.WriteString("\n\n")
		b.WriteString(m.renderHelpLine())
		return b.String()
	}

	// Render each node
	for i, entry := range m.entries {
		b.WriteString(m.renderNodeLine(i, entry))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return b.String()
}

// renderNodeLine renders a single outline row
func (m BrowseModel) renderNodeLine(index int, entry plan.OutlineEntry) string {
	node, ok := m.graph.Node(entry.ID)
	if !ok {
		return ""
	}
	core := node.Core()

	var b strings.Builder

	// Cursor marker
	if index == m.cursor {
		b.WriteString(m.styles.Cursor.Render("❯ "))
	} else {
		b.WriteString("  ")
	}

	// Indent by containment depth
	b.WriteString(strings.Repeat("  ", entry.Depth))

	// Status icon
	icon, style := m.statusGlyph(core.Status)
	b.WriteString(style.Render(icon))
	b.WriteString(" ")

	// Node info
	nodeText := fmt.Sprintf("%s - %s", core.ID, core.Description)
	if index == m.cursor {
		nodeText = m.styles.Selected.Render(nodeText)
	}
	b.WriteString(nodeText)

	// Node kind
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" (%s)", node.Kind())))

	return b.String()
}

// renderDetail renders one node with its fields and edges
func (m BrowseModel) renderDetail() string {
	if len(m.entries) == 0 || m.cursor >= len(m.entries) {
		return m.renderOutline()
	}

	id := m.entries[m.cursor].ID
	node, ok := m.graph.Node(id)
	if !ok {
		return m.renderOutline()
	}
	core := node.Core()

	var b strings.Builder

	// Title
	title := m.styles.Title.Render("🔍 " + core.ID)
	b.WriteString(title)
	b.WriteString("\n\n")

	// Fields
	icon, style := m.statusGlyph(core.Status)
	b.WriteString(m.renderField("Kind", string(node.Kind())))
	b.WriteString(m.renderField("Description", core.Description))
	b.WriteString(m.renderField("Status", style.Render(fmt.Sprintf("%s %s", icon, core.Status))))
	b.WriteString(m.renderField("Priority", fmt.Sprintf("%d", core.Priority)))

	if story, ok := node.(*plan.Story); ok {
		b.WriteString(m.renderField("Points", fmt.Sprintf("%d", story.Points)))
	}

	// Containment edges
	if parents := m.graph.Parents(id); len(parents) > 0 {
		b.WriteString(m.renderField("Part of", strings.Join(parents, ", ")))
	}
	if children := m.graph.Children(id); len(children) > 0 {
		b.WriteString(m.renderField("Contains", strings.Join(children, ", ")))
	}

	// Dependency edges
	if deps := m.graph.Dependencies(id); len(deps) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Depends on:"))
		b.WriteString("\n")
		for _, dep := range deps {
			b.WriteString("  ")
			b.WriteString(m.renderDependency(dep))
			b.WriteString("\n")
		}
	}

	// Help text
	b.WriteString("\n")
	backKey := m.styles.Key.Render("esc") + " " + m.styles.KeyDesc.Render("back")
	quitKey := m.styles.Key.Render("q") + " " + m.styles.KeyDesc.Render("quit")
	b.WriteString(m.styles.Help.Render(backKey + " • " + quitKey))

	return b.String()
}

// renderField renders a labelled detail row
func (m BrowseModel) renderField(label, value string) string {
	return m.styles.Label.Render(fmt.Sprintf("%-13s", label+":")) + value + "\n"
}

// renderDependency renders one dependency with its completion state
func (m BrowseModel) renderDependency(id string) string {
	node, ok := m.graph.Node(id)
	if !ok {
		return m.styles.Muted.Render(id + " (missing)")
	}

	core := node.Core()
	icon, style := m.statusGlyph(core.Status)
	return style.Render(icon) + " " + id + m.styles.Muted.Render(fmt.Sprintf(" (%s)", core.Status))
}

// renderHelp renders the help view
func (m BrowseModel) renderHelp() string {
	var b strings.Builder

	// Title
	title := m.styles.Title.Render("❓ Help")
	b.WriteString(title)
	b.WriteString("\n\n")

	// Hotkeys
	hotkeys := []struct {
		key  string
		desc string
	}{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"g", "Jump to first node"},
		{"G", "Jump to last node"},
		{"Enter", "Show node details"},
		{"Esc", "Back to outline"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	for _, hk := range hotkeys {
		keyText := m.styles.Key.Render(fmt.Sprintf("%-10s", hk.key))
		descText := m.styles.KeyDesc.Render(hk.desc)
		b.WriteString(keyText + " " + descText)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Press ? or Esc to return to the outline"))

	return b.String()
}

// renderHelpLine renders the help line at the bottom
func (m BrowseModel) renderHelpLine() string {
	helpItems := []string{
		m.styles.Key.Render("↑/↓") + " move",
		m.styles.Key.Render("enter") + " details",
		m.styles.Key.Render("?") + " help",
		m.styles.Key.Render("q") + " quit",
	}

	helpLine := strings.Join(helpItems, " • ")
	return m.styles.Help.Render(helpLine)
}
