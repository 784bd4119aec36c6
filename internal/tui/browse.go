// Package tui provides the interactive surfaces of the mtf CLI: the plan
// graph browser and the component registry form.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allenday/mtf/internal/plan"
)

// ViewType represents the current view being displayed
type ViewType int

// View type constants
const (
	// ViewOutline is the scrollable plan outline
	ViewOutline ViewType = iota
	// ViewDetail shows one node with its edges
	ViewDetail
	// ViewHelp is the help screen
	ViewHelp
)

// keyMap defines the keyboard shortcuts
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Select key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Top: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "first node"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "last node"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "node details"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowseModel represents the plan browser state
type BrowseModel struct {
	// Graph under inspection
	graph   *plan.Graph
	entries []plan.OutlineEntry

	// UI state
	cursor      int
	currentView ViewType
	width       int
	height      int
	quitting    bool

	// Styles
	styles Styles
}

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title      lipgloss.Style
	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	Muted      lipgloss.Style
	InProgress lipgloss.Style
	Complete   lipgloss.Style
	Label      lipgloss.Style
	Help       lipgloss.Style
	Key        lipgloss.Style
	KeyDesc    lipgloss.Style
}

// NewBrowseModel creates a browser over a built plan graph
func NewBrowseModel(g *plan.Graph) BrowseModel {
	return BrowseModel{
		graph:       g,
		entries:     g.OutlineEntries(),
		currentView: ViewOutline,
		styles:      DefaultStyles(),
	}
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")), // Pink
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")), // Light yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		InProgress: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Complete: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
	}
}

// Init initializes the model (required by Bubble Tea)
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// View renders the TUI (required by Bubble Tea)
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.currentView {
	case ViewDetail:
		return m.renderDetail()
	case ViewHelp:
		return m.renderHelp()
	default:
		return m.renderOutline()
	}
}

// handleKeyPress handles keyboard input
func (m BrowseModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = ViewOutline
		} else {
			m.currentView = ViewHelp
		}

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Top):
		m.cursor = 0

	case key.Matches(msg, keys.Bottom):
		if len(m.entries) > 0 {
			m.cursor = len(m.entries) - 1
		}

	case key.Matches(msg, keys.Select):
		if m.currentView == ViewOutline && len(m.entries) > 0 {
			m.currentView = ViewDetail
		}

	case key.Matches(msg, keys.Back):
		m.currentView = ViewOutline
	}

	return m, nil
}

// statusGlyph maps a status onto its icon and style
func (m BrowseModel) statusGlyph(status plan.Status) (string, lipgloss.Style) {
	switch status {
	case plan.StatusComplete:
		return "✓", m.styles.Complete
	case plan.StatusInProgress:
		return "⟳", m.styles.InProgress
	default:
		return "○", m.styles.Muted
	}
}

// RunBrowse starts the interactive plan browser
func RunBrowse(g *plan.Graph) error {
	p := tea.NewProgram(NewBrowseModel(g), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}

	return nil
}
