package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/allenday/mtf/internal/plan"
)

const browseFixture = `<plan version="1.0">
  <epic id="auth" status="in_progress">
    <description>Account handling</description>
    <story id="login" status="in_progress">
      <description>Let users sign in</description>
      <points>5</points>
      <task id="schema" status="complete">
        <description>Define the users table</description>
      </task>
      <task id="sessions" status="pending">
        <description>Issue session tokens</description>
        <depends_on>schema</depends_on>
        <depends_on>vault</depends_on>
      </task>
    </story>
  </epic>
</plan>`

func browseGraph(t *testing.T) *plan.Graph {
	t.Helper()
	pg := plan.New()
	if err := pg.BuildFromBytes([]byte(browseFixture)); err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return pg.Graph()
}

// TestNewBrowseModel tests model initialization
func TestNewBrowseModel(t *testing.T) {
	model := NewBrowseModel(browseGraph(t))

	if len(model.entries) != 4 {
		t.Errorf("Expected 4 outline entries, got %d", len(model.entries))
	}

	if model.cursor != 0 {
		t.Errorf("Expected cursor 0, got %d", model.cursor)
	}

	if model.currentView != ViewOutline {
		t.Errorf("Expected ViewOutline, got %v", model.currentView)
	}

	if model.quitting {
		t.Error("Expected quitting to be false by default")
	}
}

// TestKeyPressMoveCursor tests cursor movement with j/k and arrows
func TestKeyPressMoveCursor(t *testing.T) {
	model := NewBrowseModel(browseGraph(t))

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyUp}

	// Moving up at the top is a no-op
	updatedModel, _ := model.Update(up)
	m := updatedModel.(BrowseModel)
	if m.cursor != 0 {
		t.Errorf("Expected cursor to stay at 0, got %d", m.cursor)
	}

	// Move down twice
	updatedModel, _ = m.Update(down)
	updatedModel, _ = updatedModel.(BrowseModel).Update(down)
	m = updatedModel.(BrowseModel)
	if m.cursor != 2 {
		t.Errorf("Expected cursor 2, got %d", m.cursor)
	}

	// Move back up
	updatedModel, _ = m.Update(up)
	m = updatedModel.(BrowseModel)
	if m.cursor != 1 {
		t.Errorf("Expected cursor 1, got %d", m.cursor)
	}
}

// TestKeyPressCursorClampsAtBottom tests that the cursor stops at the last entry
func TestKeyPressCursorClampsAtBottom(t *testing.T) {
	model := NewBrowseModel(browseGraph(t))

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}

	var updatedModel tea.Model = model
	for i := 0; i < 10; i++ {
		updatedModel, _ = updatedModel.(BrowseModel).Update(down)
	}

	m := updatedModel.(BrowseModel)
	if m.cursor != len(m.entries)-1 {
		t.Errorf("Expected cursor %d, got %d", len(m.entries)-1, m.cursor)
	}
}

// TestKeyPressJumpToEnds tests 'g' and 'G' jumps
func TestKeyPressJumpToEnds(t *testing.T) {
	model := NewBrowseModel(browseGraph(t))

	bottom := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}
	top := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}}

	updatedModel, _ := model.Update(bottom)
	m := updatedModel.(BrowseModel)
	if m.cursor != len(m.entries)-1 {
		t.Errorf("Expected cursor %d, got %d", len(m.entries)-1, m.cursor)
	}

	updatedModel, _ = m.Update(top)
	m = updatedModel.(BrowseModel)
	if m.cursor != 0 {
		t.Errorf("Expected cursor 0, got %d", m.cursor)
	}
}

// TestKeyPressSelectAndBack tests enter to open details and esc to leave them
func TestKeyPressSelectAndBack(t *testing.T) {
	model := NewBrowseModel(browseGraph(t))

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	updatedModel, _ := model.Update(enter)
	m := updatedModel.(BrowseModel)
	if m.currentView != ViewDetail {
		t.Errorf("Expected ViewDetail, got %v", m.currentView)
	}

	updatedModel, _ = m.Update(esc)
	m = updatedModel.(BrowseModel)
	if m.currentView != ViewOutline {
		t.Errorf("Expected ViewOutline, got %v", m.currentView)
	}
}

// TestKeyPressSelectEmptyGraph tests that enter does nothing without entries
func TestKeyPressSelectEmptyGraph(t *testing.T) {
	model := NewBrowseModel(plan.NewGraph())

	enter := tea.KeyMsg{Type: tea.KeyEnter}

	updatedModel, _ := model.Update(enter)
	m := updatedModel.(BrowseModel)
	if m.currentView != ViewOutline {
		t.Errorf("Expected ViewOutline, got %v", m.currentView)
	}
}

// TestKeyPressToggleHelp tests '?' key to toggle help
func TestKeyPressToggleHelp(t *testing.T) {
	model := NewBrowseModel(browseGraph(t))

	keyMsg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}

	// Toggle help on
	updatedModel, _ := model.Update(keyMsg)
	m := updatedModel.(BrowseModel)
	if m.currentView != ViewHelp {
		t.Errorf("Expected ViewHelp, got %v", m.currentView)
	}

	// Toggle help off
	updatedModel, _ = m.Update(keyMsg)
	m = updatedModel.(BrowseModel)
	if m.currentView != ViewOutline {
		t.Errorf("Expected ViewOutline, got %v", m.currentView)
	}
}

// TestKeyPressQuit tests 'q' key to quit
func TestKeyPressQuit(t *testing.T) {
	model := NewBrowseModel(browseGraph(t))

	keyMsg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}

	updatedModel, cmd := model.Update(keyMsg)
	m := updatedModel.(BrowseModel)

	if !m.quitting {
		t.Error("Expected quitting to be true")
	}

	if cmd == nil {
		t.Error("Expected quit command, got nil")
	}
}

// TestWindowSizeMessage tests terminal resize handling
func TestWindowSizeMessage(t *testing.T) {
	model := NewBrowseModel(browseGraph(t))

	msg := tea.WindowSizeMsg{Width: 120, Height: 40}

	updatedModel, _ := model.Update(msg)
	m := updatedModel.(BrowseModel)

	if m.width != 120 || m.height != 40 {
		t.Errorf("Expected 120x40, got %dx%d", m.width, m.height)
	}
}

// TestViewRendering tests that views render without crashing
func TestViewRendering(t *testing.T) {
	model := NewBrowseModel(browseGraph(t))

	// Outline view shows the title and every node
	view := model.View()
	if !strings.Contains(view, "Plan Browser") {
		t.Error("Outline view should contain title")
	}
	for _, id := range []string{"auth", "login", "schema", "sessions"} {
		if !strings.Contains(view, id) {
			t.Errorf("Outline view should contain node %q", id)
		}
	}

	// Detail view shows fields and dependency edges
	model.cursor = 3 // sessions
	model.currentView = ViewDetail
	view = model.View()
	if !strings.Contains(view, "sessions") {
		t.Error("Detail view should contain the node id")
	}
	if !strings.Contains(view, "Depends on:") {
		t.Error("Detail view should list dependencies")
	}
	if !strings.Contains(view, "vault (missing)") {
		t.Error("Detail view should flag dangling dependencies")
	}
	if !strings.Contains(view, "Part of") {
		t.Error("Detail view should show containment")
	}

	// Story details include points
	model.cursor = 1 // login
	view = model.View()
	if !strings.Contains(view, "Points") {
		t.Error("Story detail should show points")
	}

	// Help view
	model.currentView = ViewHelp
	view = model.View()
	if !strings.Contains(view, "Help") {
		t.Error("Help view should contain 'Help'")
	}

	// Quitting clears the screen
	model.quitting = true
	if model.View() != "" {
		t.Error("Expected empty view when quitting")
	}
}

// TestViewRenderingEmptyGraph tests the outline placeholder
func TestViewRenderingEmptyGraph(t *testing.T) {
	model := NewBrowseModel(plan.NewGraph())

	view := model.View()
	if !strings.Contains(view, "empty") {
		t.Error("Outline view should say the graph is empty")
	}
}

// TestStatusGlyph tests the status icon mapping
func TestStatusGlyph(t *testing.T) {
	model := NewBrowseModel(plan.NewGraph())

	tests := []struct {
		status plan.Status
		want   string
	}{
		{plan.StatusComplete, "✓"},
		{plan.StatusInProgress, "⟳"},
		{plan.StatusPending, "○"},
	}

	for _, tt := range tests {
		icon, _ := model.statusGlyph(tt.status)
		if icon != tt.want {
			t.Errorf("statusGlyph(%s) = %q, want %q", tt.status, icon, tt.want)
		}
	}
}
